package infrastructure

import (
	"context"

	"github.com/google/uuid"
)

// RunIDContextKey is the key for storing the study run id in context.
const RunIDContextKey contextKey = "run_id"

// NewRunID returns a fresh study run id.
func NewRunID() string {
	return uuid.New().String()
}

// WithRunID tags ctx with a study run id. Records logged through the
// application logger with this context carry a run_id attribute.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDContextKey, runID)
}

// GetRunID returns the study run id carried by ctx, if any.
func GetRunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	runID, _ := ctx.Value(RunIDContextKey).(string)
	return runID
}

// EnsureTraceID makes sure ctx has a trace id. Runs started outside an
// HTTP request (the CLI) get a generated one.
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) == "" {
		return WithTraceID(ctx, uuid.New().String())
	}
	return ctx
}
