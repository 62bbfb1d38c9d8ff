package relay

import "time"

// Config holds relay transport configuration. Credentials are supplied by
// the environment, never embedded in code. Endpoint, APIKey and BearerToken
// are all required when the relay is in use.
type Config struct {
	Endpoint       string        `env:"RELAY_ENDPOINT"`
	APIKey         string        `env:"RELAY_API_KEY"`
	BearerToken    string        `env:"RELAY_BEARER_TOKEN"`
	RequestTimeout time.Duration `env:"RELAY_REQUEST_TIMEOUT" envDefault:"10s"`
}
