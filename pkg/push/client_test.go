package push_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heritagestay/notify/pkg/push"
	"github.com/heritagestay/notify/pkg/relay"
	"github.com/heritagestay/notify/pkg/retry"
	"github.com/heritagestay/notify/pkg/transport"
)

func serverRuntime() transport.Runtime {
	return transport.Runtime{Kind: transport.RuntimeServer}
}

func validParams() push.SendParams {
	return push.SendParams{
		DeviceToken: "device-token-1",
		Title:       "Booking confirmed",
		Body:        "See you on January 5",
	}
}

func newClient(t *testing.T, endpoint string, opts ...push.Option) *push.Client {
	t.Helper()
	client, err := push.NewClient(push.Config{
		FCMServerKey:   "server-key",
		FCMEndpoint:    endpoint,
		RequestTimeout: 2 * time.Second,
	}, serverRuntime(), opts...)
	require.NoError(t, err)
	return client
}

func newRelayClient(t *testing.T, endpoint string) *relay.Client {
	t.Helper()
	client, err := relay.NewClient(relay.Config{
		Endpoint:       endpoint,
		APIKey:         "k",
		BearerToken:    "b",
		RequestTimeout: 2 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresKeyOrRelay(t *testing.T) {
	t.Parallel()

	_, err := push.NewClient(push.Config{}, serverRuntime())
	assert.ErrorIs(t, err, push.ErrInvalidConfig)
}

func TestSendParamsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*push.SendParams)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *push.SendParams) {}, wantErr: false},
		{name: "empty token", mutate: func(p *push.SendParams) { p.DeviceToken = "" }, wantErr: true},
		{name: "empty title", mutate: func(p *push.SendParams) { p.Title = "" }, wantErr: true},
		{name: "empty body", mutate: func(p *push.SendParams) { p.Body = "" }, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params := validParams()
			tt.mutate(&params)
			err := params.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, push.ErrInvalidParams)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSendDirectSuccess(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotReq map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": 1,
			"failure": 0,
			"results": []map[string]any{{"message_id": "fcm-77"}},
		})
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	receipt, err := client.Send(context.Background(), validParams())

	require.NoError(t, err)
	assert.Equal(t, "fcm-77", receipt.MessageID)
	assert.Equal(t, push.ProviderFCM, receipt.Provider)
	assert.Equal(t, "key=server-key", gotAuth)
	assert.Equal(t, "device-token-1", gotReq["to"])
	notification := gotReq["notification"].(map[string]any)
	assert.Equal(t, "Booking confirmed", notification["title"])
}

func TestSendDirectProviderRejection(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": 0,
			"failure": 1,
			"results": []map[string]any{{"error": "NotRegistered"}},
		})
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	_, err := client.Send(context.Background(), validParams())

	require.Error(t, err)
	assert.ErrorIs(t, err, push.ErrSendFailed)
	assert.Contains(t, err.Error(), "NotRegistered")
	assert.False(t, retry.IsPermanent(err))
}

func TestSendDirectNon2xxParsesStructuredError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"InvalidServerKey"}`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	_, err := client.Send(context.Background(), validParams())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidServerKey")
}

func TestSendNetworkFailureFallsBackToRelay(t *testing.T) {
	t.Parallel()

	// Direct endpoint refuses connections: server closed before the call.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	relaySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		assert.Equal(t, "push", msg["channel"])
		assert.Equal(t, "device-token-1", msg["recipient"])
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "messageId": "relay-55"})
	}))
	defer relaySrv.Close()

	client := newClient(t, deadURL, push.WithRelay(newRelayClient(t, relaySrv.URL)))
	receipt, err := client.Send(context.Background(), validParams())

	require.NoError(t, err)
	assert.Equal(t, "relay-55", receipt.MessageID)
	assert.Equal(t, push.ProviderRelay, receipt.Provider)
}

func TestSendMissingCredentialsRoutesToRelay(t *testing.T) {
	t.Parallel()

	directCalled := false
	directSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		directCalled = true
	}))
	defer directSrv.Close()

	relaySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "messageId": "relay-1"})
	}))
	defer relaySrv.Close()

	client, err := push.NewClient(push.Config{
		FCMEndpoint:    directSrv.URL,
		RequestTimeout: 2 * time.Second,
	}, serverRuntime(), push.WithRelay(newRelayClient(t, relaySrv.URL)))
	require.NoError(t, err)

	receipt, err := client.Send(context.Background(), validParams())
	require.NoError(t, err)
	assert.Equal(t, push.ProviderRelay, receipt.Provider)
	assert.False(t, directCalled)
}

func TestSendValidationFailureIsPermanent(t *testing.T) {
	t.Parallel()

	client := newClient(t, "http://unused.invalid")
	params := validParams()
	params.DeviceToken = ""

	_, err := client.Send(context.Background(), params)
	require.Error(t, err)
	assert.ErrorIs(t, err, push.ErrInvalidParams)
	assert.True(t, retry.IsPermanent(err))
}
