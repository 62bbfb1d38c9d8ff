package template

import "context"

// Template is a stored notification template, authored by the admin console
// and read-only from the engine's perspective. Email fields are always
// populated for active templates; push fields are optional and fall back to
// the email fields at render time.
type Template struct {
	Key           string `json:"template_key"`
	Name          string `json:"template_name"`
	EmailSubject  string `json:"email_subject"`
	EmailBodyHTML string `json:"email_body_html"`
	EmailBodyText string `json:"email_body_text,omitempty"`
	PushTitle     string `json:"push_title,omitempty"`
	PushBody      string `json:"push_body,omitempty"`
	PushImageURL  string `json:"push_image_url,omitempty"`
	PushActionURL string `json:"push_action_url,omitempty"`
	IsCritical    bool   `json:"is_critical"`
	IsActive      bool   `json:"is_active"`
}

// Storage retrieves stored templates by key. Implementations return
// ErrTemplateNotFound for unknown keys; the active/inactive distinction is
// applied by the Resolver, not the storage layer.
type Storage interface {
	GetByKey(ctx context.Context, key string) (*Template, error)
}

// Resolver looks up templates and enforces the activation invariant.
type Resolver struct {
	storage Storage
}

// NewResolver creates a resolver backed by the given storage.
func NewResolver(storage Storage) *Resolver {
	return &Resolver{storage: storage}
}

// Resolve returns the active template for key. A missing key and a disabled
// template are indistinguishable to callers: both are ErrTemplateNotFound,
// a terminal failure that must be logged without attempting any send.
func (r *Resolver) Resolve(ctx context.Context, key string) (*Template, error) {
	tpl, err := r.storage.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if !tpl.IsActive {
		return nil, ErrTemplateNotFound
	}
	return tpl, nil
}
