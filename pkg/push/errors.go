package push

import "errors"

var (
	ErrInvalidConfig = errors.New("push.errors.invalid_config")
	ErrInvalidParams = errors.New("push.errors.invalid_params")
	ErrSendFailed    = errors.New("push.errors.send_failed")
)
