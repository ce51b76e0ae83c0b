package logger

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production zap logger wrapped by otelzap so entries logged
// with Ctx carry the active trace and span ids. The plain logger is also
// installed as the zap global.
func New(serviceName, level string) (*otelzap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)

	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"
	config.InitialFields = map[string]any{"service": serviceName}

	zapLogger, err := config.Build()

	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	zap.ReplaceGlobals(zapLogger)

	return otelzap.New(zapLogger, otelzap.WithMinLevel(lvl)), nil
}
