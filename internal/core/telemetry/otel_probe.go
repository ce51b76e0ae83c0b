package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"loginapp/internal/core/port"
)

// OTELProbe implements Telemetry using OpenTelemetry spans and the
// Prometheus AppMetrics.
type OTELProbe struct {
	logger  *zap.Logger
	metrics *AppMetrics
	tracer  trace.Tracer
}

func NewOTELProbe(logger *zap.Logger, metrics *AppMetrics) port.Telemetry {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OTELProbe{
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer("loginapp"),
	}
}

func (p *OTELProbe) StartServiceSpan(ctx context.Context, service string, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("service.%s.%s", service, operation)

	standardAttrs := []attribute.KeyValue{
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
		attribute.String("component", "service"),
	}

	standardAttrs = append(standardAttrs, attrs...)

	return p.tracer.Start(ctx, spanName, trace.WithAttributes(standardAttrs...))
}

func (p *OTELProbe) RecordServiceOperation(ctx context.Context, service string, operation string, outcome string, duration time.Duration, err error) {
	// Get current span from context (created by StartServiceSpan)
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.String("service", service),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
		attribute.Int64("duration_ns", duration.Nanoseconds()),
		attribute.Bool("has_error", err != nil),
	)

	if p.metrics != nil {
		p.metrics.RecordAuthAttempt(ctx, operation, outcome)
	}

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		p.logger.Error("Service operation failed",
			zap.String("service", service),
			zap.String("operation", operation),
			zap.String("outcome", outcome),
			zap.Duration("duration", duration),
			zap.Error(err))

		return
	}

	span.SetStatus(codes.Ok, "")
}
