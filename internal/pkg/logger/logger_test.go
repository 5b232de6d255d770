// internal/pkg/logger/logger_test.go
package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &Logger{Logger: slog.New(&redactHandler{next: &contextHandler{next: handler}})}, buf
}

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLevel(tt.input), "level %q", tt.input)
	}
}

func TestContextHandler_AttachesRequestScopedValues(t *testing.T) {
	logger, buf := newBufferedLogger(t)

	ctx := context.WithValue(context.Background(), ContextKeyRequestID, "req-42")
	ctx = context.WithValue(ctx, ContextKeyMethod, "GET")
	ctx = context.WithValue(ctx, ContextKeyStatusCode, 200)
	ctx = context.WithValue(ctx, ContextKeyDuration, 1500*time.Millisecond)

	logger.InfoContext(ctx, "request_completed")

	record := decodeRecord(t, buf)
	assert.Equal(t, "req-42", record["request_id"])
	assert.Equal(t, "GET", record["method"])
	assert.Equal(t, float64(200), record["status_code"])
	assert.Equal(t, float64(1500), record["duration_ms"])
}

func TestContextHandler_IgnoresEmptyContext(t *testing.T) {
	logger, buf := newBufferedLogger(t)

	logger.Info("plain message", slog.String("key", "value"))

	record := decodeRecord(t, buf)
	assert.Equal(t, "plain message", record["msg"])
	assert.Equal(t, "value", record["key"])
	assert.NotContains(t, record, "request_id")
}

func TestRedactHandler_MasksSensitiveAttributes(t *testing.T) {
	logger, buf := newBufferedLogger(t)

	logger.Info("connecting",
		slog.String("db_password", "hunter2"),
		slog.String("api_key", "abc123"),
		slog.String("host", "localhost"),
	)

	record := decodeRecord(t, buf)
	assert.Equal(t, "[redacted]", record["db_password"])
	assert.Equal(t, "[redacted]", record["api_key"])
	assert.Equal(t, "localhost", record["host"])
}

func TestWithContext(t *testing.T) {
	logger, buf := newBufferedLogger(t)

	ctx := context.WithValue(context.Background(), ContextKeyTraceID, "trace-7")
	logger.WithContext(ctx).Info("traced")

	record := decodeRecord(t, buf)
	assert.Equal(t, "trace-7", record["trace_id"])
}
