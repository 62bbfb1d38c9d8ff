package transport

import (
	"context"
	"errors"
	"net"
	"strings"
)

// networkErrorSignatures are lowercase substrings of error messages that
// identify transport-level failures (cross-origin rejections, DNS, refused
// connections, generic fetch failures). Matching on text is a last resort for
// errors that reach us as opaque strings from provider SDKs.
var networkErrorSignatures = []string{
	"cross-origin",
	"cors",
	"network",
	"failed to fetch",
	"connection refused",
	"connection reset",
	"no such host",
	"timeout",
	"deadline exceeded",
}

// IsNetworkError reports whether err is a transport-level failure rather
// than a provider rejection. Channel clients use it to trigger the one-time
// same-attempt fallback from the direct path to the relay.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range networkErrorSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}
