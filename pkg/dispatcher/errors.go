package dispatcher

import "errors"

var (
	// ErrConfig marks failures detectable before any network call: missing
	// recipient, missing channel client, unsupported channel.
	ErrConfig = errors.New("dispatcher.errors.config")
	// ErrTemplateNotFound marks a terminal resolution failure; no send is
	// attempted and the skip reason names the offending key.
	ErrTemplateNotFound = errors.New("dispatcher.errors.template_not_found")
)
