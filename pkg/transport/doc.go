// Package transport decides, per send attempt, whether a channel client
// should call its provider directly or go through the relay.
//
// The execution context is modeled as an explicit Runtime value injected by
// the host instead of being sniffed from ambient globals, so the routing
// logic stays a pure function of its inputs:
//
//	decision := transport.Decide(transport.ChannelEmail, rt, cfg.ServerToken != "", cfg.ForceRelay)
//	if decision.UseRelay {
//	    // POST to the relay endpoint
//	}
//
// The package also classifies transport-level errors (IsNetworkError) so
// channel clients can distinguish "the provider rejected the message" from
// "the provider was unreachable" and fall back to the relay within the same
// attempt.
package transport
