package template

import "errors"

var (
	// ErrTemplateNotFound is returned when a template key is unknown or the
	// template is disabled. Terminal: the orchestrator logs a skip reason and
	// never retries.
	ErrTemplateNotFound = errors.New("template.errors.template_not_found")
	// ErrStorageFailure wraps backend read errors.
	ErrStorageFailure = errors.New("template.errors.storage_failure")
)
