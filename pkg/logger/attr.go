package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
func UserID(id string) slog.Attr {
	return slog.String("user_id", id)
}

// Channel records the delivery channel under the key "channel".
func Channel(channel string) slog.Attr {
	return slog.String("channel", channel)
}

// Recipient records the delivery target (email address or device token)
// under the key "recipient".
func Recipient(recipient string) slog.Attr {
	return slog.String("recipient", recipient)
}

// NotificationType records the template key under the key
// "notification_type".
func NotificationType(key string) slog.Attr {
	return slog.String("notification_type", key)
}

// Provider records the provider that carried a send under the key
// "provider".
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}
