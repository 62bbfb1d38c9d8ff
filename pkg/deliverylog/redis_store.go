package deliverylog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/heritagestay/notify/pkg/transport"
)

// RedisStore keeps one hash per composite key. HSET overwrites fields in
// place, which gives the keyed-upsert semantics for free; the original id
// and created_at are written with HSETNX so overwrites preserve them.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed delivery log store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "deliverylog"}
}

func (s *RedisStore) redisKey(key Key) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s", s.prefix, key.UserID, key.NotificationType, key.Channel, key.Recipient)
}

func (s *RedisStore) Upsert(ctx context.Context, entry Entry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	sentAt := ""
	if entry.SentAt != nil {
		sentAt = entry.SentAt.Format(time.RFC3339Nano)
	}

	rkey := s.redisKey(entry.Key())
	pipe := s.client.TxPipeline()
	pipe.HSetNX(ctx, rkey, "id", entry.ID)
	pipe.HSetNX(ctx, rkey, "created_at", entry.CreatedAt.Format(time.RFC3339Nano))
	pipe.HSet(ctx, rkey, map[string]any{
		"user_id":             entry.UserID,
		"notification_type":   entry.NotificationType,
		"channel":             string(entry.Channel),
		"recipient":           entry.Recipient,
		"subject":             entry.Subject,
		"content":             entry.Content,
		"template_name":       entry.TemplateName,
		"status":              string(entry.Status),
		"skip_reason":         entry.SkipReason,
		"provider":            entry.Provider,
		"provider_message_id": entry.ProviderMessageID,
		"sent_at":             sentAt,
	})
	pipe.SAdd(ctx, s.prefix+":user:"+entry.UserID, rkey)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key Key) (*Entry, error) {
	fields, err := s.client.HGetAll(ctx, s.redisKey(key)).Result()
	if err != nil {
		return nil, errors.Join(ErrStorageFailure, err)
	}
	if len(fields) == 0 {
		return nil, ErrEntryNotFound
	}
	return entryFromFields(fields)
}

func (s *RedisStore) ListByUser(ctx context.Context, userID string) ([]Entry, error) {
	keys, err := s.client.SMembers(ctx, s.prefix+":user:"+userID).Result()
	if err != nil {
		return nil, errors.Join(ErrStorageFailure, err)
	}

	var entries []Entry
	for _, rkey := range keys {
		fields, err := s.client.HGetAll(ctx, rkey).Result()
		if err != nil {
			return nil, errors.Join(ErrStorageFailure, err)
		}
		if len(fields) == 0 {
			continue
		}
		entry, err := entryFromFields(fields)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

func entryFromFields(fields map[string]string) (*Entry, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, fmt.Errorf("%w: malformed created_at: %v", ErrStorageFailure, err)
	}

	entry := Entry{
		ID:                fields["id"],
		UserID:            fields["user_id"],
		NotificationType:  fields["notification_type"],
		Channel:           transport.Channel(fields["channel"]),
		Recipient:         fields["recipient"],
		Subject:           fields["subject"],
		Content:           fields["content"],
		TemplateName:      fields["template_name"],
		Status:            Status(fields["status"]),
		SkipReason:        fields["skip_reason"],
		Provider:          fields["provider"],
		ProviderMessageID: fields["provider_message_id"],
		CreatedAt:         createdAt,
	}
	if raw := strings.TrimSpace(fields["sent_at"]); raw != "" {
		sentAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed sent_at: %v", ErrStorageFailure, err)
		}
		entry.SentAt = &sentAt
	}
	return &entry, nil
}
