package template

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStorage reads templates from the notification_templates table.
type PgStorage struct {
	pool *pgxpool.Pool
}

// NewPgStorage creates a Postgres-backed template storage.
func NewPgStorage(pool *pgxpool.Pool) *PgStorage {
	return &PgStorage{pool: pool}
}

func (s *PgStorage) GetByKey(ctx context.Context, key string) (*Template, error) {
	const query = `
		SELECT template_key, template_name, email_subject, email_body_html,
		       COALESCE(email_body_text, ''), COALESCE(push_title, ''),
		       COALESCE(push_body, ''), COALESCE(push_image_url, ''),
		       COALESCE(push_action_url, ''), is_critical, is_active
		FROM notification_templates
		WHERE template_key = $1`

	var tpl Template
	err := s.pool.QueryRow(ctx, query, key).Scan(
		&tpl.Key, &tpl.Name, &tpl.EmailSubject, &tpl.EmailBodyHTML,
		&tpl.EmailBodyText, &tpl.PushTitle, &tpl.PushBody, &tpl.PushImageURL,
		&tpl.PushActionURL, &tpl.IsCritical, &tpl.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, errors.Join(ErrStorageFailure, err)
	}
	return &tpl, nil
}
