// Package template resolves stored notification templates and renders them
// into channel-specific content.
//
// Resolution enforces the activation invariant: a template is usable only
// while is_active is true; inactive and missing keys both surface as
// ErrTemplateNotFound so the orchestrator can log a skip reason without
// attempting a send.
//
// Rendering substitutes {{ name }} placeholders from a flat variable map.
// Unknown placeholders render as the empty string rather than surviving as
// literal braces. Push content degrades gracefully for templates authored
// only for email: the title falls back to the rendered subject, then the
// template name, then the key; the body falls back to the plain-text body,
// then an HTML-stripped rendering of the HTML body.
package template
