// Package logger builds the slog loggers used across the engine and defines
// the attribute helpers that keep log keys consistent between packages.
package logger
