package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/philly/looper/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, logger.ParseLevel(in), "level %q", in)
	}
}

func TestSlogAdapter_JSONInProduction(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewSlogAdapterTo(&buf, "production", "info").With("component", "test")

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "handler registered", "event", "tick")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "handler registered", record["msg"])
	assert.Equal(t, "tick", record["event"])
	assert.Equal(t, "test", record["component"])
	assert.Equal(t, "INFO", record["level"])
}

func TestSlogAdapter_TextInDevelopment(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewSlogAdapterTo(&buf, "development", "debug")

	log.Debug(context.Background(), "loop idle", "queued", 0)

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), `msg="loop idle"`)
	assert.Contains(t, buf.String(), "queued=0")
}
