package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestOTELProbe_RecordServiceOperation(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewAppMetrics(registry)
	probe := NewOTELProbe(nil, metrics)

	ctx, span := probe.StartServiceSpan(context.Background(), "auth", "authenticate", []attribute.KeyValue{
		attribute.Bool("test", true),
	})
	defer span.End()

	probe.RecordServiceOperation(ctx, "auth", "authenticate", "granted", time.Millisecond, nil)
	probe.RecordServiceOperation(ctx, "auth", "authenticate", "denied", time.Millisecond, nil)
	probe.RecordServiceOperation(ctx, "auth", "authenticate", "error", time.Millisecond, errors.New("boom"))

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.authAttempts.WithLabelValues("authenticate", "granted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.authAttempts.WithLabelValues("authenticate", "denied")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.authAttempts.WithLabelValues("authenticate", "error")))
}

func TestAppMetrics_RecordRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewAppMetrics(registry)
	ctx := context.Background()

	metrics.RecordRequest(ctx, "POST", "/auth", "200", 10*time.Millisecond)
	metrics.RecordRequest(ctx, "POST", "/auth", "200", 20*time.Millisecond)
	metrics.IncrementActiveConnections(ctx)

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.requestTotal.WithLabelValues("POST", "/auth", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.activeConnections))

	metrics.DecrementActiveConnections(ctx)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.activeConnections))
}

func TestNoOpProbe(t *testing.T) {
	probe := NewNoOpProbe()

	ctx, span := probe.StartServiceSpan(context.Background(), "auth", "authenticate", nil)
	defer span.End()

	assert.NotNil(t, ctx)
	probe.RecordServiceOperation(ctx, "auth", "authenticate", "granted", time.Millisecond, nil)
}
