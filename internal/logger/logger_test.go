package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/alkime/slideswitch/internal/config"
	"github.com/alkime/slideswitch/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.Level(&config.Config{Env: "development", LogLevel: "info"}))
	assert.Equal(t, slog.LevelInfo, logger.Level(&config.Config{Env: config.EnvProduction, LogLevel: "info"}))
	assert.Equal(t, slog.LevelWarn, logger.Level(&config.Config{Env: config.EnvProduction, LogLevel: "warn"}))
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer

	l := logger.SetupLogger(&config.Config{Env: config.EnvProduction, LogLevel: "info"}, &buf, logger.FormatJSON)
	l.Debug("hidden")
	l.Info("settled", "open", true)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"open":true`)

	buf.Reset()
	l = logger.SetupLogger(&config.Config{Env: config.EnvProduction, LogLevel: "info"}, &buf, logger.FormatText)
	l.Info("settled", "open", false)
	assert.Contains(t, buf.String(), "open=false")
}
