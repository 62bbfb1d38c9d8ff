package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/heritagestay/notify/pkg/transport"
)

// Message is the logical payload forwarded to the relay. The relay carries
// both channels through the same endpoint; Channel tells it which provider
// to call on our behalf.
type Message struct {
	Channel   transport.Channel `json:"channel"`
	Recipient string            `json:"recipient"`
	Subject   string            `json:"subject,omitempty"`
	Body      string            `json:"body"`
	BodyText  string            `json:"body_text,omitempty"`
	Sender    string            `json:"sender,omitempty"`
	ImageURL  string            `json:"image_url,omitempty"`
	ActionURL string            `json:"action_url,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
}

type relayResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Client forwards send requests to the relay endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a relay client. All credential fields are required so a
// misconfigured relay fails at startup instead of on the first send.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: Endpoint is required", ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: APIKey is required", ErrInvalidConfig)
	}
	if cfg.BearerToken == "" {
		return nil, fmt.Errorf("%w: BearerToken is required", ErrInvalidConfig)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}, nil
}

// Forward POSTs msg to the relay and returns the relay-assigned message id.
// A non-2xx status or a response without the success flag is a failed
// attempt carrying the relay's error body as the message.
func (c *Client) Forward(ctx context.Context, msg Message) (string, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.cfg.APIKey)
	req.Header.Set("Authorization", "Bearer "+c.cfg.BearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrRelayFailed, err)
	}

	var parsed relayResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		// Unparseable bodies fall back to the raw response text.
		parsed = relayResponse{Error: string(body)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !parsed.Success {
		errMsg := parsed.Error
		if errMsg == "" {
			errMsg = string(body)
		}
		return "", fmt.Errorf("%w: status %d: %s", ErrRelayFailed, resp.StatusCode, errMsg)
	}

	return parsed.MessageID, nil
}
