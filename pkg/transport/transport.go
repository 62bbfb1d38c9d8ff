package transport

// Channel identifies a notification delivery medium.
type Channel string

const (
	// ChannelEmail delivers through the transactional email provider.
	ChannelEmail Channel = "email"
	// ChannelPush delivers through the mobile push provider.
	ChannelPush Channel = "push"
)

// RuntimeKind classifies the execution context the engine runs in.
type RuntimeKind string

const (
	// RuntimeServer is an unconstrained backend process that can reach
	// provider APIs directly.
	RuntimeServer RuntimeKind = "server"
	// RuntimeSandbox is a constrained context subject to cross-origin
	// restrictions, where direct provider calls are expected to fail.
	RuntimeSandbox RuntimeKind = "sandbox"
	// RuntimeNativeShell is a recognized unconstrained host embedded in a
	// native application shell.
	RuntimeNativeShell RuntimeKind = "native_shell"
)

// Runtime is the execution context, supplied explicitly by the host at
// construction time. Keeping it a plain value instead of probing ambient
// state lets tests enumerate every branch of Decide deterministically.
type Runtime struct {
	Kind RuntimeKind
}

// Decision is the per-call routing verdict. It is never cached or persisted;
// every send computes a fresh one.
type Decision struct {
	UseRelay bool
	Reason   string
}

// Decide picks between the direct provider path and the relay for a single
// send attempt. Precedence: explicit override, then constrained runtime,
// then credential availability.
func Decide(channel Channel, rt Runtime, credentialsAvailable, forceRelay bool) Decision {
	if forceRelay {
		return Decision{UseRelay: true, Reason: "relay forced by configuration"}
	}
	if rt.Kind == RuntimeSandbox {
		return Decision{UseRelay: true, Reason: "constrained runtime cannot reach " + string(channel) + " provider directly"}
	}
	if !credentialsAvailable {
		return Decision{UseRelay: true, Reason: "no direct " + string(channel) + " provider credentials configured"}
	}
	return Decision{UseRelay: false, Reason: "direct " + string(channel) + " provider call"}
}
