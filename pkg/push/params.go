package push

import (
	"fmt"
	"strings"
)

// SendParams represents one outgoing push notification to a single device.
type SendParams struct {
	DeviceToken string            `json:"device_token"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	ImageURL    string            `json:"image_url,omitempty"`
	ActionURL   string            `json:"action_url,omitempty"` // Click target opened by the app
	Data        map[string]string `json:"data,omitempty"`       // Custom key-value payload
}

// Validate checks the required fields. Failures are configuration errors:
// the orchestrator reports them without any network call or retry.
func (p SendParams) Validate() error {
	if strings.TrimSpace(p.DeviceToken) == "" {
		return fmt.Errorf("%w: DeviceToken is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: Title is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.Body) == "" {
		return fmt.Errorf("%w: Body is required", ErrInvalidParams)
	}
	return nil
}
