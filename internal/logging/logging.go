// Package logging wraps the standard logger with level prefixes and an
// optional request id taken from the context.
package logging

import (
	"context"
	"log"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID returns a copy of ctx carrying the given request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Info logs an info-level message.
func Info(format string, v ...any) {
	log.Printf("[INFO] "+format, v...)
}

// Warn logs a warning-level message.
func Warn(format string, v ...any) {
	log.Printf("[WARN] "+format, v...)
}

// Error logs an error-level message.
func Error(format string, v ...any) {
	log.Printf("[ERROR] "+format, v...)
}

// Fatal logs a fatal error and exits.
func Fatal(format string, v ...any) {
	log.Fatalf("[FATAL] "+format, v...)
}

// InfoCtx is Info with the request id prefix when one is present.
func InfoCtx(ctx context.Context, format string, v ...any) {
	Info(withRequestID(ctx, format), v...)
}

// WarnCtx is Warn with the request id prefix when one is present.
func WarnCtx(ctx context.Context, format string, v ...any) {
	Warn(withRequestID(ctx, format), v...)
}

// ErrorCtx is Error with the request id prefix when one is present.
func ErrorCtx(ctx context.Context, format string, v ...any) {
	Error(withRequestID(ctx, format), v...)
}

func withRequestID(ctx context.Context, format string) string {
	if reqID := RequestID(ctx); reqID != "" {
		return "[request_id=" + reqID + "] " + format
	}
	return format
}
