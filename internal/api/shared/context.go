package shared

import (
	"context"
	"encoding/hex"

	"github.com/google/uuid"
)

type contextKey string

const traceIDKey contextKey = "traceID"

// TraceIDLength is the length of a generated trace ID: a random UUID in hex.
const TraceIDLength = 32

// SetTraceID returns a copy of ctx carrying a fresh trace ID.
func SetTraceID(ctx context.Context) context.Context {
	id := uuid.New()
	return context.WithValue(ctx, traceIDKey, hex.EncodeToString(id[:]))
}

// GetTraceID retrieves the trace ID from the context, or "" when there is none.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey).(string)
	return traceID
}
