package retry

import (
	"context"
	"errors"
	"time"

	backoff "github.com/sethvargo/go-retry"
)

const (
	// DefaultMaxAttempts bounds the retry budget for a single logical send.
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is multiplied by the attempt number between attempts:
	// attempt 1 fails -> wait 1x, attempt 2 fails -> wait 2x, and so on.
	DefaultBaseDelay = time.Second
)

// permanentError marks a failure that must not be retried, such as a
// validation or configuration problem detected before any network call.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so Do returns it immediately without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// linearBackoff scales the wait by the number of attempts already failed.
func linearBackoff(base time.Duration) backoff.Backoff {
	attempt := 0
	return backoff.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		return time.Duration(attempt) * base, false
	})
}

// Do runs op up to maxAttempts times with linear backoff between attempts,
// returning the first success or the last attempt's failure unchanged.
// Errors marked with Permanent abort the loop at once. The backoff sleep is
// cancellable: if ctx is done while waiting, Do returns ctx.Err().
func Do[T any](ctx context.Context, maxAttempts int, baseDelay time.Duration, op func(ctx context.Context) (T, error)) (T, error) {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseDelay < 0 {
		baseDelay = DefaultBaseDelay
	}

	var result T
	b := backoff.WithMaxRetries(uint64(maxAttempts-1), linearBackoff(baseDelay))
	err := backoff.Do(ctx, b, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			if IsPermanent(err) {
				return err
			}
			return backoff.RetryableError(err)
		}
		result = v
		return nil
	})
	return result, err
}
