package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mrz1836/postmark"

	"github.com/heritagestay/notify/pkg/logger"
	"github.com/heritagestay/notify/pkg/relay"
	"github.com/heritagestay/notify/pkg/retry"
	"github.com/heritagestay/notify/pkg/transport"
)

// Provider names recorded in the delivery log.
const (
	ProviderPostmark = "postmark"
	ProviderRelay    = "relay"
)

// Receipt reports which provider carried the send and the message id it
// assigned, if any.
type Receipt struct {
	MessageID string
	Provider  string
}

// postmarkAPI is the slice of the Postmark client the email client uses.
// Narrowed to an interface so tests can substitute a fake without HTTP.
type postmarkAPI interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// Client sends transactional email either directly through Postmark or via
// the relay, deciding per call from the injected runtime and credentials.
type Client struct {
	api     postmarkAPI
	relay   *relay.Client
	cfg     Config
	runtime transport.Runtime
	logger  *slog.Logger
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

// WithPostmarkAPI replaces the Postmark client. Intended for tests.
func WithPostmarkAPI(api postmarkAPI) Option {
	return func(c *Client) { c.api = api }
}

// NewClient creates an email channel client. The sender identity is always
// required; the Postmark tokens are optional as long as a relay is attached,
// since the transport decision routes credential-less clients to the relay.
func NewClient(cfg Config, rt transport.Runtime, opts ...Option) (*Client, error) {
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if cfg.ReplyToEmail != "" && !emailRegex.MatchString(cfg.ReplyToEmail) {
		return nil, fmt.Errorf("%w: ReplyToEmail must be a valid email address", ErrInvalidConfig)
	}

	c := &Client{
		cfg:     cfg,
		runtime: rt,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.api == nil && cfg.PostmarkServerToken != "" {
		pm := postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
		if cfg.RequestTimeout > 0 {
			pm.HTTPClient = &http.Client{Timeout: cfg.RequestTimeout}
		}
		c.api = pm
	}
	if c.api == nil && c.relay == nil {
		return nil, fmt.Errorf("%w: either Postmark tokens or a relay client must be configured", ErrInvalidConfig)
	}

	return c, nil
}

// Send delivers one email and returns the receipt of the path that carried
// it. The call is a single attempt from the retry controller's perspective,
// though a network-level failure on the direct path triggers one automatic
// fallback to the relay within the same attempt.
func (c *Client) Send(ctx context.Context, params SendParams) (Receipt, error) {
	if err := params.Validate(); err != nil {
		return Receipt{}, retry.Permanent(err)
	}

	decision := transport.Decide(transport.ChannelEmail, c.runtime, c.api != nil, c.cfg.ForceRelay)
	if decision.UseRelay {
		return c.sendViaRelay(ctx, params)
	}

	receipt, err := c.sendDirect(ctx, params)
	if err != nil && transport.IsNetworkError(err) && c.relay != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "direct email send failed at transport level, falling back to relay",
			logger.Recipient(params.SendTo),
			logger.Error(err),
		)
		return c.sendViaRelay(ctx, params)
	}
	return receipt, err
}

func (c *Client) sendDirect(ctx context.Context, params SendParams) (Receipt, error) {
	resp, err := c.api.SendEmail(ctx, postmark.Email{
		From:       c.cfg.SenderEmail,
		ReplyTo:    c.cfg.ReplyToEmail,
		To:         params.SendTo,
		Subject:    params.Subject,
		Tag:        params.Tag,
		HTMLBody:   params.BodyHTML,
		TextBody:   params.BodyText,
		TrackOpens: true,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return Receipt{}, fmt.Errorf("%w: postmark error %d: %s", ErrSendFailed, resp.ErrorCode, resp.Message)
	}
	return Receipt{MessageID: resp.MessageID, Provider: ProviderPostmark}, nil
}

func (c *Client) sendViaRelay(ctx context.Context, params SendParams) (Receipt, error) {
	if c.relay == nil {
		return Receipt{}, retry.Permanent(fmt.Errorf("%w: relay path chosen but no relay client configured", ErrInvalidConfig))
	}

	id, err := c.relay.Forward(ctx, relay.Message{
		Channel:   transport.ChannelEmail,
		Recipient: params.SendTo,
		Subject:   params.Subject,
		Body:      params.BodyHTML,
		BodyText:  params.BodyText,
		Sender:    c.cfg.SenderEmail,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return Receipt{MessageID: id, Provider: ProviderRelay}, nil
}
