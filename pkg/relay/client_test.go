package relay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heritagestay/notify/pkg/relay"
	"github.com/heritagestay/notify/pkg/transport"
)

func testConfig(endpoint string) relay.Config {
	return relay.Config{
		Endpoint:       endpoint,
		APIKey:         "test-api-key",
		BearerToken:    "test-bearer",
		RequestTimeout: 2 * time.Second,
	}
}

func TestNewClientValidatesConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  relay.Config
	}{
		{name: "missing endpoint", cfg: relay.Config{APIKey: "k", BearerToken: "b"}},
		{name: "missing api key", cfg: relay.Config{Endpoint: "https://relay.example.com", BearerToken: "b"}},
		{name: "missing bearer token", cfg: relay.Config{Endpoint: "https://relay.example.com", APIKey: "k"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := relay.NewClient(tt.cfg)
			assert.ErrorIs(t, err, relay.ErrInvalidConfig)
		})
	}
}

func TestForwardSuccess(t *testing.T) {
	t.Parallel()

	var gotAuth, gotAPIKey string
	var gotMsg map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("X-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotMsg))
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "messageId": "relay-42"})
	}))
	defer srv.Close()

	client, err := relay.NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	id, err := client.Forward(context.Background(), relay.Message{
		Channel:   transport.ChannelEmail,
		Recipient: "a@b.com",
		Subject:   "Welcome Asha",
		Body:      "<p>hello</p>",
		Sender:    "noreply@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "relay-42", id)
	assert.Equal(t, "Bearer test-bearer", gotAuth)
	assert.Equal(t, "test-api-key", gotAPIKey)
	assert.Equal(t, "email", gotMsg["channel"])
	assert.Equal(t, "a@b.com", gotMsg["recipient"])
}

func TestForwardFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "non-2xx with structured error",
			status:  http.StatusBadGateway,
			body:    `{"success":false,"error":"provider unavailable"}`,
			wantMsg: "provider unavailable",
		},
		{
			name:    "2xx without success flag",
			status:  http.StatusOK,
			body:    `{"success":false,"error":"quota exceeded"}`,
			wantMsg: "quota exceeded",
		},
		{
			name:    "unparseable body falls back to raw text",
			status:  http.StatusInternalServerError,
			body:    "relay exploded",
			wantMsg: "relay exploded",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, err := relay.NewClient(testConfig(srv.URL))
			require.NoError(t, err)

			_, err = client.Forward(context.Background(), relay.Message{
				Channel:   transport.ChannelPush,
				Recipient: "device-token",
				Body:      "body",
			})

			require.Error(t, err)
			assert.ErrorIs(t, err, relay.ErrRelayFailed)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
