// Package requestctx carries the request id through a context so middleware
// and log lines agree on it without threading it explicitly.
package requestctx

import "context"

type contextKey int

const requestIDKey contextKey = iota

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the id stored by WithRequestID, or "" when the
// context never passed through the middleware.
func GetRequestID(ctx context.Context) string {
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}
