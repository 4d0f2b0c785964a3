package otel

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Handle bundles the tracer with its shutdown hook.
type Handle struct {
	Tracer   trace.Tracer
	Shutdown func(ctx context.Context) error
}

type handleKey struct{}

// With stores the handle in the context.
func With(ctx context.Context, h *Handle) context.Context {
	return context.WithValue(ctx, handleKey{}, h)
}

// From retrieves the handle, or nil when tracing is disabled.
func From(ctx context.Context) *Handle {
	if h, ok := ctx.Value(handleKey{}).(*Handle); ok {
		return h
	}
	return nil
}
