package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"loginapp/internal/core/port"
)

// NoOpProbe implements Telemetry with no operations - useful for testing or when telemetry is disabled
type NoOpProbe struct {
	tracer trace.Tracer
}

func NewNoOpProbe() port.Telemetry {
	return &NoOpProbe{tracer: noop.NewTracerProvider().Tracer("loginapp")}
}

func (p *NoOpProbe) StartServiceSpan(ctx context.Context, service string, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, service+"."+operation)
}

func (p *NoOpProbe) RecordServiceOperation(ctx context.Context, service string, operation string, outcome string, duration time.Duration, err error) {
	// No operation
}
