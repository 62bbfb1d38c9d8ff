package relay

import "errors"

var (
	ErrInvalidConfig = errors.New("relay.errors.invalid_config")
	ErrRelayFailed   = errors.New("relay.errors.relay_failed")
)
