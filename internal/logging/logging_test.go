package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"itam-service/internal/config"
)

func TestNew(t *testing.T) {
	logger, err := New(config.LoggerConfig{Level: "warn", Encoding: "json"})
	require.NoError(t, err)
	defer logger.Sync() //nolint:errcheck

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LoggerConfig{Level: "chatty", Encoding: "json"})
	assert.Error(t, err)
}
