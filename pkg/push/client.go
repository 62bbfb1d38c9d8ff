package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heritagestay/notify/pkg/logger"
	"github.com/heritagestay/notify/pkg/relay"
	"github.com/heritagestay/notify/pkg/retry"
	"github.com/heritagestay/notify/pkg/transport"
)

// Provider names recorded in the delivery log.
const (
	ProviderFCM   = "fcm"
	ProviderRelay = "relay"
)

// Receipt reports which provider carried the send and the message id it
// assigned, if any.
type Receipt struct {
	MessageID string
	Provider  string
}

// fcmNotification is the notification block of the legacy send payload.
type fcmNotification struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	Image       string `json:"image,omitempty"`
	ClickAction string `json:"click_action,omitempty"`
}

type fcmRequest struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		MessageID string `json:"message_id"`
		Error     string `json:"error"`
	} `json:"results"`
}

// Client sends mobile push notifications either directly through FCM's
// legacy send endpoint or via the relay, deciding per call from the
// injected runtime and credentials.
type Client struct {
	cfg        Config
	relay      *relay.Client
	runtime    transport.Runtime
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRelay attaches a relay client used when the transport decision routes
// away from the direct path, and as the in-attempt fallback for network
// failures on the direct path.
func WithRelay(r *relay.Client) Option {
	return func(c *Client) { c.relay = r }
}

// WithLogger sets the logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the HTTP client. Intended for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a push channel client. The server key is optional as
// long as a relay is attached, since the transport decision routes
// credential-less clients to the relay.
func NewClient(cfg Config, rt transport.Runtime, opts ...Option) (*Client, error) {
	if cfg.FCMEndpoint == "" {
		cfg.FCMEndpoint = "https://fcm.googleapis.com/fcm/send"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	c := &Client{
		cfg:     cfg,
		runtime: rt,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}

	if c.cfg.FCMServerKey == "" && c.relay == nil {
		return nil, fmt.Errorf("%w: either FCMServerKey or a relay client must be configured", ErrInvalidConfig)
	}

	return c, nil
}

// Send delivers one push notification and returns the receipt of the path
// that carried it. A network-level failure on the direct path triggers one
// automatic fallback to the relay within the same attempt.
func (c *Client) Send(ctx context.Context, params SendParams) (Receipt, error) {
	if err := params.Validate(); err != nil {
		return Receipt{}, retry.Permanent(err)
	}

	decision := transport.Decide(transport.ChannelPush, c.runtime, c.cfg.FCMServerKey != "", c.cfg.ForceRelay)
	if decision.UseRelay {
		return c.sendViaRelay(ctx, params)
	}

	receipt, err := c.sendDirect(ctx, params)
	if err != nil && transport.IsNetworkError(err) && c.relay != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "direct push send failed at transport level, falling back to relay",
			logger.Recipient(params.DeviceToken),
			logger.Error(err),
		)
		return c.sendViaRelay(ctx, params)
	}
	return receipt, err
}

func (c *Client) sendDirect(ctx context.Context, params SendParams) (Receipt, error) {
	payload, err := json.Marshal(fcmRequest{
		To: params.DeviceToken,
		Notification: fcmNotification{
			Title:       params.Title,
			Body:        params.Body,
			Image:       params.ImageURL,
			ClickAction: params.ActionURL,
		},
		Data: params.Data,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.FCMEndpoint, bytes.NewReader(payload))
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.cfg.FCMServerKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: reading response: %v", ErrSendFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Non-2xx bodies are parsed for a structured error; unparseable
		// bodies fall back to the raw response text.
		var structured struct {
			Error string `json:"error"`
		}
		errMsg := string(body)
		if json.Unmarshal(body, &structured) == nil && structured.Error != "" {
			errMsg = structured.Error
		}
		return Receipt{}, fmt.Errorf("%w: fcm status %d: %s", ErrSendFailed, resp.StatusCode, errMsg)
	}

	var parsed fcmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Receipt{}, fmt.Errorf("%w: unexpected fcm response: %s", ErrSendFailed, string(body))
	}
	if len(parsed.Results) > 0 && parsed.Results[0].Error != "" {
		return Receipt{}, fmt.Errorf("%w: fcm error: %s", ErrSendFailed, parsed.Results[0].Error)
	}

	messageID := ""
	if len(parsed.Results) > 0 {
		messageID = parsed.Results[0].MessageID
	}
	return Receipt{MessageID: messageID, Provider: ProviderFCM}, nil
}

func (c *Client) sendViaRelay(ctx context.Context, params SendParams) (Receipt, error) {
	if c.relay == nil {
		return Receipt{}, retry.Permanent(fmt.Errorf("%w: relay path chosen but no relay client configured", ErrInvalidConfig))
	}

	id, err := c.relay.Forward(ctx, relay.Message{
		Channel:   transport.ChannelPush,
		Recipient: params.DeviceToken,
		Subject:   params.Title,
		Body:      params.Body,
		ImageURL:  params.ImageURL,
		ActionURL: params.ActionURL,
		Data:      params.Data,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return Receipt{MessageID: id, Provider: ProviderRelay}, nil
}
