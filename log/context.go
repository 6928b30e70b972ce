package log

import (
	"context"

	"github.com/google/uuid"
)

type ContextKey string

const (
	ContextKeyTraceID ContextKey = "logContextKeyTraceID"
)

// PutTraceID returns a context that carries the provided trace id. Every
// log entry written with that context includes it
func PutTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ContextKeyTraceID, traceID)
}

// NewTraceID generates a random trace id for requests that
// do not provide one
func NewTraceID() string {
	return uuid.New().String()
}

// GetTraceID returns the trace id in the context or an empty
// string if there is none
func GetTraceID(ctx context.Context) string {
	contextTraceID := ctx.Value(ContextKeyTraceID)
	if contextTraceID == nil {
		return ""
	}

	traceID, ok := contextTraceID.(string)
	if !ok {
		return ""
	}

	return traceID
}
