package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	previous := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(previous) })

	log, err := New("loginapp", "debug")
	require.NoError(t, err)

	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.Same(t, log.Logger, zap.L())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loginapp", "loud")

	assert.ErrorContains(t, err, "invalid log level")
}
