package transport_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heritagestay/notify/pkg/transport"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		channel     transport.Channel
		runtime     transport.Runtime
		credentials bool
		forceRelay  bool
		wantRelay   bool
	}{
		{
			name:        "server with credentials goes direct",
			channel:     transport.ChannelEmail,
			runtime:     transport.Runtime{Kind: transport.RuntimeServer},
			credentials: true,
			wantRelay:   false,
		},
		{
			name:        "explicit override wins over everything",
			channel:     transport.ChannelEmail,
			runtime:     transport.Runtime{Kind: transport.RuntimeServer},
			credentials: true,
			forceRelay:  true,
			wantRelay:   true,
		},
		{
			name:        "sandbox runtime always relays",
			channel:     transport.ChannelPush,
			runtime:     transport.Runtime{Kind: transport.RuntimeSandbox},
			credentials: true,
			wantRelay:   true,
		},
		{
			name:        "native shell with credentials goes direct",
			channel:     transport.ChannelPush,
			runtime:     transport.Runtime{Kind: transport.RuntimeNativeShell},
			credentials: true,
			wantRelay:   false,
		},
		{
			name:        "missing credentials relay",
			channel:     transport.ChannelEmail,
			runtime:     transport.Runtime{Kind: transport.RuntimeServer},
			credentials: false,
			wantRelay:   true,
		},
		{
			name:        "native shell without credentials relays",
			channel:     transport.ChannelPush,
			runtime:     transport.Runtime{Kind: transport.RuntimeNativeShell},
			credentials: false,
			wantRelay:   true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decision := transport.Decide(tt.channel, tt.runtime, tt.credentials, tt.forceRelay)
			assert.Equal(t, tt.wantRelay, decision.UseRelay)
			assert.NotEmpty(t, decision.Reason)
		})
	}
}

func TestDecideIsPure(t *testing.T) {
	t.Parallel()

	rt := transport.Runtime{Kind: transport.RuntimeServer}
	first := transport.Decide(transport.ChannelEmail, rt, true, false)
	second := transport.Decide(transport.ChannelEmail, rt, true, false)
	assert.Equal(t, first, second)
}

func TestIsNetworkError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "net.Error", err: &net.DNSError{Err: "lookup failed", IsTimeout: true}, want: true},
		{name: "deadline exceeded", err: fmt.Errorf("request: %w", context.DeadlineExceeded), want: true},
		{name: "cors text", err: errors.New("blocked by CORS policy"), want: true},
		{name: "cross-origin text", err: errors.New("Cross-Origin request rejected"), want: true},
		{name: "fetch failure text", err: errors.New("Failed to fetch"), want: true},
		{name: "connection refused text", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "provider rejection is not transport", err: errors.New("invalid recipient address"), want: false},
		{name: "auth failure is not transport", err: errors.New("401 unauthorized"), want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, transport.IsNetworkError(tt.err))
		})
	}
}
