package deliverylog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heritagestay/notify/pkg/transport"
)

// PgStore persists the delivery log in the notification_delivery_log table.
// The unique index on (user_id, notification_type, channel, recipient)
// serializes concurrent writers on the same key at the database level.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a Postgres-backed delivery log store.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) Upsert(ctx context.Context, entry Entry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	const query = `
		INSERT INTO notification_delivery_log (
			id, user_id, notification_type, channel, recipient,
			subject, content, template_name, status, skip_reason,
			provider, provider_message_id, created_at, sent_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id, notification_type, channel, recipient)
		DO UPDATE SET
			subject = EXCLUDED.subject,
			content = EXCLUDED.content,
			template_name = EXCLUDED.template_name,
			status = EXCLUDED.status,
			skip_reason = EXCLUDED.skip_reason,
			provider = EXCLUDED.provider,
			provider_message_id = EXCLUDED.provider_message_id,
			sent_at = EXCLUDED.sent_at`

	_, err := s.pool.Exec(ctx, query,
		entry.ID, entry.UserID, entry.NotificationType, string(entry.Channel),
		entry.Recipient, entry.Subject, entry.Content, entry.TemplateName,
		string(entry.Status), entry.SkipReason, entry.Provider,
		entry.ProviderMessageID, entry.CreatedAt, entry.SentAt,
	)
	if err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	return nil
}

func (s *PgStore) Get(ctx context.Context, key Key) (*Entry, error) {
	const query = selectColumns + `
		WHERE user_id = $1 AND notification_type = $2 AND channel = $3 AND recipient = $4`

	row := s.pool.QueryRow(ctx, query, key.UserID, key.NotificationType, string(key.Channel), key.Recipient)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, errors.Join(ErrStorageFailure, err)
	}
	return entry, nil
}

func (s *PgStore) ListByUser(ctx context.Context, userID string) ([]Entry, error) {
	const query = selectColumns + `
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, errors.Join(ErrStorageFailure, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, errors.Join(ErrStorageFailure, err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrStorageFailure, err)
	}
	return entries, nil
}

const selectColumns = `
		SELECT id, user_id, notification_type, channel, recipient,
		       COALESCE(subject, ''), COALESCE(content, ''),
		       COALESCE(template_name, ''), status, COALESCE(skip_reason, ''),
		       COALESCE(provider, ''), COALESCE(provider_message_id, ''),
		       created_at, sent_at
		FROM notification_delivery_log`

func scanEntry(row pgx.Row) (*Entry, error) {
	var entry Entry
	var channel, status string
	if err := row.Scan(
		&entry.ID, &entry.UserID, &entry.NotificationType, &channel,
		&entry.Recipient, &entry.Subject, &entry.Content, &entry.TemplateName,
		&status, &entry.SkipReason, &entry.Provider, &entry.ProviderMessageID,
		&entry.CreatedAt, &entry.SentAt,
	); err != nil {
		return nil, err
	}
	entry.Channel = transport.Channel(channel)
	entry.Status = Status(status)
	return &entry, nil
}
