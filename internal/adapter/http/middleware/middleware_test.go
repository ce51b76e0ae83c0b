package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"loginapp/internal/core/telemetry"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(handlers...)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c.Request.Context()))
	})

	return router
}

func TestRequestID_Generated(t *testing.T) {
	router := newRouter(RequestID())

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(rr, req)

	assert.NotEmpty(t, rr.Body.String())
	assert.Equal(t, rr.Body.String(), rr.Header().Get(RequestIDHeader))
}

func TestRequestID_Propagated(t *testing.T) {
	router := newRouter(RequestID())

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	router.ServeHTTP(rr, req)

	assert.Equal(t, "req-123", rr.Body.String())
	assert.Equal(t, "req-123", rr.Header().Get(RequestIDHeader))
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := otelzap.New(zap.New(core))

	router := newRouter(RequestID(), Logging(logger, "loginapp"))

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping?x=1", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	router.ServeHTTP(rr, req)

	entries := logs.FilterMessage("HTTP Request").All()

	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "/ping?x=1", fields["path"])
		assert.Equal(t, int64(http.StatusOK), fields["status"])
		assert.Equal(t, "req-123", fields["request_id"])
	}
}

func TestMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := telemetry.NewAppMetrics(registry)

	router := newRouter(Metrics(metrics))

	for range 2 {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(rr, req)
	}

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/missing", nil)
	router.ServeHTTP(rr, req)

	count, err := testutil.GatherAndCount(registry, "http_requests_total")

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRequireHTTPS(t *testing.T) {
	router := newRouter(RequireHTTPS(zap.NewNop()))

	tests := []struct {
		name         string
		host         string
		forwarded    string
		wantStatus   int
		wantLocation string
	}{
		{name: "plain http", host: "api.example.com", wantStatus: http.StatusPermanentRedirect, wantLocation: "https://api.example.com/ping"},
		{name: "proxied https", host: "api.example.com", forwarded: "https", wantStatus: http.StatusOK},
		{name: "localhost", host: "localhost:8080", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
			req.Host = tt.host

			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-Proto", tt.forwarded)
			}

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))
		})
	}
}
