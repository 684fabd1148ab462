package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/queue-backend/internal/config"
	"github.com/heartmarshall/queue-backend/pkg/ctxutil"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m), buf.String())
	return m
}

func TestNewLogger_SetsDefault(t *testing.T) {
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"})
	assert.Same(t, logger.Handler(), slog.Default().Handler())
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level_"+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, config.LogConfig{Level: tt.level, Format: "text"})

			assert.True(t, logger.Enabled(context.Background(), tt.want))
			assert.False(t, logger.Enabled(context.Background(), tt.want-1))
		})
	}
}

func TestNewLogger_SourceOnlyInText(t *testing.T) {
	var text, js bytes.Buffer
	newLogger(&text, config.LogConfig{Level: "info", Format: "text"}).Info("hello")
	newLogger(&js, config.LogConfig{Level: "info", Format: "json"}).Info("hello")

	assert.Contains(t, text.String(), "source=")
	assert.NotContains(t, decodeLine(t, &js), "source")
}

func TestNewLogger_AddsContextIdentifiers(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "info", Format: "json"}).With("service", "document")

	user := uuid.New()
	ctx := ctxutil.WithRequestID(context.Background(), "req-7")
	ctx = ctxutil.WithUserID(ctx, user)
	ctx = ctxutil.WithClientID(ctx, "tab-1")
	logger.InfoContext(ctx, "document created", slog.String("document_id", "d1"))

	m := decodeLine(t, &buf)
	assert.Equal(t, "document created", m["msg"])
	assert.Equal(t, "document", m["service"])
	assert.Equal(t, "d1", m["document_id"])
	assert.Equal(t, "req-7", m["request_id"])
	assert.Equal(t, user.String(), m["user_id"])
	assert.Equal(t, "tab-1", m["client_id"])
}

func TestNewLogger_ExplicitAttrWins(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "info", Format: "json"})

	ctx := ctxutil.WithRequestID(context.Background(), "from-ctx")
	logger.LogAttrs(ctx, slog.LevelInfo, "http.request", slog.String("request_id", "explicit"))

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(`"request_id"`)))
	assert.Equal(t, "explicit", decodeLine(t, &buf)["request_id"])
}
