package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/itemservice/internal/pkg/logger"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		records = append(records, record)
	}
	return records
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.LogConfig{
		Level:       "info",
		Format:      "json",
		ServiceName: "item-service",
		Writer:      &buf,
	})

	log.Debug("hidden")
	log.Info("item saved", slog.Int64("item_id", 42))

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "item saved", records[0]["msg"])
	assert.Equal(t, "INFO", records[0]["severity"])
	assert.Equal(t, float64(42), records[0]["item_id"])
	assert.Equal(t, "item-service", records[0]["service"])
}

func TestContextHandler_AddsContextValues(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.LogConfig{Level: "debug", Format: "json", Writer: &buf})

	runID := uuid.New()
	ctx := logger.WithRequestID(context.Background(), "req-1")
	ctx = logger.WithOperation(ctx, "FindAll")
	ctx = logger.WithRunID(ctx, runID)

	log.InfoContext(ctx, "finding items")

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "req-1", records[0]["request_id"])
	assert.Equal(t, "FindAll", records[0]["operation"])
	assert.Equal(t, runID.String(), records[0]["run_id"])
}

func TestWithRequestID_GeneratesID(t *testing.T) {
	ctx := logger.WithRequestID(context.Background(), "")

	id := logger.RequestID(ctx)
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	assert.Empty(t, logger.RequestID(context.Background()))
}

func TestSanitizationHandler(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.LogConfig{Level: "info", Format: "json", Writer: &buf})

	log.With(slog.String("db_password", "hunter2")).
		Info("connecting", slog.String("dsn", "host=db password=hunter2"), slog.String("secret_token", "abc"))

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, `"abc"`)
	assert.Contains(t, out, "***REDACTED***")
}

func TestPrettyTextHandler(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.LogConfig{Level: "warn", Format: "text", Writer: &buf})

	log.Info("hidden")
	log.With(slog.String("repository", "item")).Warn("slow query", slog.Int("ms", 900))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "slow query")
	assert.Contains(t, out, "repository=item")
	assert.Contains(t, out, "ms=900")
}

func TestSamplingHandler_KeepsWarnings(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := slog.New(logger.NewSamplingHandler(base, 0.000001))

	for i := 0; i < 10; i++ {
		log.Warn("always logged")
	}

	assert.Equal(t, 10, strings.Count(buf.String(), "always logged"))
}
