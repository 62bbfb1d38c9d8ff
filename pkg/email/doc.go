// Package email is the email channel client of the notification delivery
// engine. It sends transactional email through Postmark on the direct path
// and through the relay when the transport decision rules out direct
// provider access (constrained runtime, missing credentials, or an explicit
// override).
//
// A network-level failure on the direct path triggers one automatic
// fallback to the relay within the same attempt; provider rejections do
// not, since the relay would only repeat them. Validation failures are
// marked permanent so the retry controller never replays them.
//
// # Usage
//
//	client, err := email.NewClient(cfg, transport.Runtime{Kind: transport.RuntimeServer},
//	    email.WithRelay(relayClient),
//	)
//	if err != nil {
//	    // configuration error, fail startup
//	}
//
//	receipt, err := client.Send(ctx, email.SendParams{
//	    SendTo:   "user@example.com",
//	    Subject:  "Welcome!",
//	    BodyHTML: htmlContent,
//	})
//
// # Error Handling
//
// Sentinel errors are checked with errors.Is:
//   - ErrInvalidConfig: client construction or relay routing misconfigured
//   - ErrInvalidParams: send parameters failed validation
//   - ErrSendFailed: the provider or relay rejected the message
package email
