// Package sl contains helpers for structured logging with slog,
// mainly for attaching errors to log records in a uniform shape.
package sl

import "log/slog"

// Err returns a slog.Attr with key "error" holding the error text.
//
// Example:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
