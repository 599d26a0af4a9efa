package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(NewConfig("info", "json", "test-service", "1.0.0", "test", false), &buf)

	Info("poll finished", "new", 2, "tracked", 14)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-service", entry[AttrKeyService])
	assert.Equal(t, "1.0.0", entry[AttrKeyVersion])
	assert.Equal(t, "test", entry[AttrKeyEnvironment])
	assert.Equal(t, "poll finished", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, float64(2), entry["new"])
}

func TestInitLoggerWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(NewConfig("warn", "text", "svc", "dev", "test", false), &buf)

	Debug("hidden")
	Info("hidden too")
	assert.Empty(t, buf.String())

	Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))

	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)
	assert.NotNil(t, FromContext(ctx))
}

func TestConfigLevels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Config{Level: tt.level}.LogLevel(), tt.level)
	}
}

func TestPresetConfigs(t *testing.T) {
	prod := ProductionConfig()
	assert.True(t, prod.IsJSON())
	assert.False(t, prod.AddSource)
	assert.Equal(t, EnvironmentProduction, prod.Environment)

	dev := DevelopmentConfig()
	assert.False(t, dev.IsJSON())
	assert.True(t, dev.AddSource)

	def := DefaultConfig()
	assert.Equal(t, DefaultServiceName, def.ServiceName)
}
