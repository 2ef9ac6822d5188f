// Package ctxutil carries request-scoped values through context.Context.
package ctxutil

import (
	"context"
)

type requestIDKey struct{}

// RequestIDKey is the log attribute name for the request id.
const RequestIDKey = "request_id"

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
