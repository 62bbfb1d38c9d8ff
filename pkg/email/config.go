package email

import "time"

// Config holds email channel configuration.
// PostmarkServerToken and PostmarkAccountToken are optional: when absent the
// client routes through the relay instead of calling the provider directly.
// SenderEmail is required as it establishes the sender identity for all
// outbound messages on both paths.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	ReplyToEmail         string `env:"REPLY_TO_EMAIL"`
	ForceRelay           bool   `env:"EMAIL_FORCE_RELAY"`

	RequestTimeout time.Duration `env:"EMAIL_REQUEST_TIMEOUT" envDefault:"10s"` // Per-call timeout so a hung provider cannot stall the retry budget.
}
