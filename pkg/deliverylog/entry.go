package deliverylog

import (
	"time"

	"github.com/heritagestay/notify/pkg/transport"
)

// Status is the terminal state of one logical dispatch.
type Status string

const (
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)

// Key identifies the single current log row for a (user, notification type,
// channel, recipient) combination. Repeated dispatches for the same key
// update the row instead of inserting a new one.
type Key struct {
	UserID           string
	NotificationType string
	Channel          transport.Channel
	Recipient        string
}

// Entry records the final outcome of one dispatch attempt.
// Invariants: StatusSent implies SentAt is set and SkipReason is empty;
// StatusFailed implies SkipReason is set.
type Entry struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user_id"`
	NotificationType  string            `json:"notification_type"`
	Channel           transport.Channel `json:"channel"`
	Recipient         string            `json:"recipient"`
	Subject           string            `json:"subject,omitempty"`
	Content           string            `json:"content,omitempty"`
	TemplateName      string            `json:"template,omitempty"`
	Status            Status            `json:"status"`
	SkipReason        string            `json:"skip_reason,omitempty"`
	Provider          string            `json:"provider,omitempty"`
	ProviderMessageID string            `json:"provider_message_id,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	SentAt            *time.Time        `json:"sent_at,omitempty"`
}

// Key returns the composite identity of the entry.
func (e Entry) Key() Key {
	return Key{
		UserID:           e.UserID,
		NotificationType: e.NotificationType,
		Channel:          e.Channel,
		Recipient:        e.Recipient,
	}
}
