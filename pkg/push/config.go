package push

import "time"

// Config holds push channel configuration. FCMServerKey is optional: when
// absent the client routes through the relay instead of calling FCM
// directly.
type Config struct {
	FCMServerKey   string        `env:"FCM_SERVER_KEY"`
	FCMEndpoint    string        `env:"FCM_ENDPOINT" envDefault:"https://fcm.googleapis.com/fcm/send"`
	RequestTimeout time.Duration `env:"PUSH_REQUEST_TIMEOUT" envDefault:"10s"`
	ForceRelay     bool          `env:"PUSH_FORCE_RELAY"`
}
