package port

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry lets the core emit spans and counters without knowing the
// exporter behind them.
type Telemetry interface {
	StartServiceSpan(ctx context.Context, service string, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span)
	RecordServiceOperation(ctx context.Context, service string, operation string, outcome string, duration time.Duration, err error)
}
