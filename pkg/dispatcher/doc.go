// Package dispatcher is the delivery orchestrator of the notification
// engine. Given a (user, template key, channel, recipient, variables)
// request it resolves and renders the stored template, invokes the matching
// channel client under the retry controller, and records the settled outcome
// in the delivery log with keyed upsert semantics.
//
// # State machine
//
// Each dispatch moves through START -> TEMPLATE_RESOLVED -> {SENT | FAILED},
// short-circuiting to FAILED when the recipient is missing or the template
// is unknown/inactive. Every terminal state, including the short circuits,
// produces exactly one (upserted) delivery log row.
//
// # Guarantees
//
//   - Total: Dispatch converts every failure into a Result; nothing panics
//     past the orchestrator boundary.
//   - Terminal failures are never retried: validation and resolution errors
//     skip the retry controller entirely.
//   - Retried failures surface only the last attempt's error message.
//   - Push fan-out over multiple device tokens waits for all tokens; one
//     token's failure does not cancel or delay the others.
//
// # Usage
//
//	svc := dispatcher.New(resolver, store,
//	    dispatcher.WithEmailClient(emailClient),
//	    dispatcher.WithPushClient(pushClient),
//	)
//
//	result := svc.SendEmailNotification(ctx, userID, "verification_approved",
//	    "owner@example.com", map[string]string{"userName": "Asha"})
//	if !result.Success {
//	    // delivery failed and was logged; the business action proceeds
//	}
package dispatcher
