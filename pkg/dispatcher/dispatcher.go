package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/heritagestay/notify/pkg/deliverylog"
	"github.com/heritagestay/notify/pkg/email"
	"github.com/heritagestay/notify/pkg/logger"
	"github.com/heritagestay/notify/pkg/push"
	"github.com/heritagestay/notify/pkg/retry"
	"github.com/heritagestay/notify/pkg/template"
	"github.com/heritagestay/notify/pkg/transport"
)

// EmailClient is the slice of the email channel client the orchestrator
// uses. Satisfied by *email.Client.
type EmailClient interface {
	Send(ctx context.Context, params email.SendParams) (email.Receipt, error)
}

// PushClient is the slice of the push channel client the orchestrator uses.
// Satisfied by *push.Client.
type PushClient interface {
	Send(ctx context.Context, params push.SendParams) (push.Receipt, error)
}

// Request is one logical dispatch: deliver the template identified by
// TemplateKey to Recipient over Channel, with Variables substituted.
type Request struct {
	UserID      string
	TemplateKey string
	Channel     transport.Channel
	Recipient   string
	Variables   map[string]string
}

// Result is the settled outcome of one dispatch. Dispatch never panics and
// never returns an error through a second channel: everything the caller
// needs is here, and the same outcome is already in the delivery log.
type Result struct {
	Success    bool
	Recipient  string
	Provider   string
	MessageID  string
	SkipReason string
	Err        error
}

// Service is the delivery orchestrator: it resolves the template, invokes
// the channel client under the retry controller, and records the outcome.
type Service struct {
	resolver    *template.Resolver
	store       deliverylog.Store
	email       EmailClient
	push        PushClient
	logger      *slog.Logger
	maxAttempts int
	baseDelay   time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithEmailClient attaches the email channel client.
func WithEmailClient(c EmailClient) Option {
	return func(s *Service) { s.email = c }
}

// WithPushClient attaches the push channel client.
func WithPushClient(c PushClient) Option {
	return func(s *Service) { s.push = c }
}

// WithLogger sets the logger for the Service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxAttempts overrides the retry budget per dispatch.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithBaseDelay overrides the backoff base delay. Tests use this to keep
// retry timing fast.
func WithBaseDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.baseDelay = d
		}
	}
}

// New creates a dispatch service. Channel clients are attached with options;
// a dispatch for a channel without a client fails as a configuration error
// and is still logged.
func New(resolver *template.Resolver, store deliverylog.Store, opts ...Option) *Service {
	s := &Service{
		resolver:    resolver,
		store:       store,
		logger:      slog.Default(),
		maxAttempts: retry.DefaultMaxAttempts,
		baseDelay:   retry.DefaultBaseDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch runs the full pipeline for one request: validate, resolve,
// render, send under retry, log. It is a total function from request to
// result; no failure escapes as a panic or unlogged error.
func (s *Service) Dispatch(ctx context.Context, req Request) Result {
	if strings.TrimSpace(req.Recipient) == "" {
		return s.settle(ctx, req, nil, sendOutcome{}, fmt.Errorf("%w: missing recipient", ErrConfig))
	}

	tpl, err := s.resolver.Resolve(ctx, req.TemplateKey)
	if err != nil {
		if errors.Is(err, template.ErrTemplateNotFound) {
			err = fmt.Errorf("%w: template %q not found or inactive", ErrTemplateNotFound, req.TemplateKey)
		}
		return s.settle(ctx, req, nil, sendOutcome{}, err)
	}

	outcome, err := s.send(ctx, req, tpl)
	return s.settle(ctx, req, tpl, outcome, err)
}

// sendOutcome carries the rendered content alongside the channel receipt so
// the log entry reflects exactly what went out.
type sendOutcome struct {
	subject   string
	content   string
	provider  string
	messageID string
}

func (s *Service) send(ctx context.Context, req Request, tpl *template.Template) (sendOutcome, error) {
	switch req.Channel {
	case transport.ChannelEmail:
		if s.email == nil {
			return sendOutcome{}, fmt.Errorf("%w: no email client configured", ErrConfig)
		}
		content := template.RenderEmail(tpl, req.Variables)
		params := email.SendParams{
			SendTo:   req.Recipient,
			Subject:  content.Subject,
			BodyHTML: content.BodyHTML,
			BodyText: content.BodyText,
			Tag:      tpl.Key,
		}
		if err := params.Validate(); err != nil {
			return sendOutcome{subject: content.Subject, content: content.BodyHTML}, err
		}
		receipt, err := retry.Do(ctx, s.maxAttempts, s.baseDelay, func(ctx context.Context) (email.Receipt, error) {
			return s.email.Send(ctx, params)
		})
		return sendOutcome{
			subject:   content.Subject,
			content:   content.BodyHTML,
			provider:  receipt.Provider,
			messageID: receipt.MessageID,
		}, err

	case transport.ChannelPush:
		if s.push == nil {
			return sendOutcome{}, fmt.Errorf("%w: no push client configured", ErrConfig)
		}
		content := template.RenderPush(tpl, req.Variables)
		params := push.SendParams{
			DeviceToken: req.Recipient,
			Title:       content.Title,
			Body:        content.Body,
			ImageURL:    content.ImageURL,
			ActionURL:   content.ActionURL,
		}
		if err := params.Validate(); err != nil {
			return sendOutcome{subject: content.Title, content: content.Body}, err
		}
		receipt, err := retry.Do(ctx, s.maxAttempts, s.baseDelay, func(ctx context.Context) (push.Receipt, error) {
			return s.push.Send(ctx, params)
		})
		return sendOutcome{
			subject:   content.Title,
			content:   content.Body,
			provider:  receipt.Provider,
			messageID: receipt.MessageID,
		}, err

	default:
		return sendOutcome{}, fmt.Errorf("%w: unsupported channel %q", ErrConfig, req.Channel)
	}
}

// settle writes the delivery log entry for the final outcome and converts
// it into the caller-facing result.
func (s *Service) settle(ctx context.Context, req Request, tpl *template.Template, outcome sendOutcome, sendErr error) Result {
	entry := deliverylog.Entry{
		UserID:            req.UserID,
		NotificationType:  req.TemplateKey,
		Channel:           req.Channel,
		Recipient:         req.Recipient,
		Subject:           outcome.subject,
		Content:           outcome.content,
		Provider:          outcome.provider,
		ProviderMessageID: outcome.messageID,
	}
	if tpl != nil {
		entry.TemplateName = tpl.Name
	}
	if req.Recipient == "" {
		// Keyed storage needs a non-empty recipient even for config failures.
		entry.Recipient = "-"
	}

	result := Result{Recipient: req.Recipient}
	if sendErr == nil {
		now := time.Now()
		entry.Status = deliverylog.StatusSent
		entry.SentAt = &now
		result.Success = true
		result.Provider = outcome.provider
		result.MessageID = outcome.messageID
	} else {
		entry.Status = deliverylog.StatusFailed
		entry.SkipReason = sendErr.Error()
		result.Err = sendErr
		result.SkipReason = sendErr.Error()
	}

	if err := s.store.Upsert(ctx, entry); err != nil {
		// The send already happened (or terminally failed); a logging
		// failure must not change the caller-visible outcome.
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to record delivery log entry",
			logger.UserID(req.UserID),
			logger.NotificationType(req.TemplateKey),
			logger.Channel(string(req.Channel)),
			logger.Error(err),
		)
	}

	level := slog.LevelInfo
	if !result.Success {
		level = slog.LevelWarn
	}
	s.logger.LogAttrs(ctx, level, "notification dispatch settled",
		logger.UserID(req.UserID),
		logger.NotificationType(req.TemplateKey),
		logger.Channel(string(req.Channel)),
		logger.Recipient(req.Recipient),
		slog.String("status", string(entry.Status)),
		logger.Provider(outcome.provider),
		slog.String("skip_reason", entry.SkipReason),
	)

	return result
}

// SendEmailNotification is the caller-facing email entry point consumed by
// the approval workflow. It settles: delivery failure is reported in the
// result, never raised, so the business action that triggered the
// notification is never blocked by it.
func (s *Service) SendEmailNotification(ctx context.Context, userID, templateKey, recipientEmail string, variables map[string]string) Result {
	return s.Dispatch(ctx, Request{
		UserID:      userID,
		TemplateKey: templateKey,
		Channel:     transport.ChannelEmail,
		Recipient:   recipientEmail,
		Variables:   variables,
	})
}

// SendPushNotification fans out one independent dispatch per device token,
// running them concurrently and waiting for all of them regardless of
// individual outcome. One token's permanent failure neither cancels nor
// delays delivery to the others; the returned slice holds one result per
// token, in input order.
func (s *Service) SendPushNotification(ctx context.Context, userID, templateKey string, deviceTokens []string, variables map[string]string) []Result {
	results := make([]Result, len(deviceTokens))

	var wg sync.WaitGroup
	for i, token := range deviceTokens {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			results[i] = s.Dispatch(ctx, Request{
				UserID:      userID,
				TemplateKey: templateKey,
				Channel:     transport.ChannelPush,
				Recipient:   token,
				Variables:   variables,
			})
		}(i, token)
	}
	wg.Wait()

	return results
}
