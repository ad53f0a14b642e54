// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContextKey represents keys for context values
type ContextKey string

const (
	// Context keys for logging
	ContextKeyRequestID ContextKey = "request_id"
	ContextKeyOperation ContextKey = "operation"
	ContextKeyRunID     ContextKey = "run_id"
)

// LogConfig holds logger configuration
type LogConfig struct {
	Level          string  `json:"level"`
	Format         string  `json:"format"`
	Output         string  `json:"output"`
	AddSource      bool    `json:"add_source"`
	SampleRate     float64 `json:"sample_rate"`
	Environment    string  `json:"environment"`
	ServiceName    string  `json:"service_name"`
	ServiceVersion string  `json:"service_version"`
	EnableSampling bool    `json:"enable_sampling"`

	// Writer overrides Output when set
	Writer io.Writer `json:"-"`
}

// SetupLogger builds the process logger and installs it as the slog default
func SetupLogger(level string, format string) *slog.Logger {
	logger := NewLogger(&LogConfig{
		Level:          level,
		Format:         format,
		Output:         "stdout",
		AddSource:      level == "debug",
		ServiceName:    os.Getenv("SERVICE_NAME"),
		ServiceVersion: os.Getenv("SERVICE_VERSION"),
		Environment:    os.Getenv("APP_ENV"),
	})
	slog.SetDefault(logger)

	return logger
}

// NewLogger creates a logger from config. The handler chain is
// sanitization -> sampling (optional) -> context -> json or pretty text.
func NewLogger(config *LogConfig) *slog.Logger {
	if config == nil {
		config = &LogConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		}
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(config.Level),
		AddSource: config.AddSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			return replaceAttr(config, groups, a)
		},
	}

	writer := config.Writer
	if writer == nil {
		writer = getWriter(config.Output)
	}

	var handler slog.Handler
	switch config.Format {
	case "text":
		handler = NewPrettyTextHandler(writer, opts)
	default:
		handler = slog.NewJSONHandler(writer, opts)
	}

	handler = NewContextHandler(handler)

	if config.EnableSampling && config.SampleRate > 0 && config.SampleRate < 1.0 {
		handler = NewSamplingHandler(handler, config.SampleRate)
	}

	handler = NewSanitizationHandler(handler)

	attrs := []slog.Attr{}
	if config.ServiceName != "" {
		attrs = append(attrs, slog.String("service", config.ServiceName))
	}
	if config.ServiceVersion != "" {
		attrs = append(attrs, slog.String("version", config.ServiceVersion))
	}
	if config.Environment != "" {
		attrs = append(attrs, slog.String("env", config.Environment))
	}
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	return slog.New(handler)
}

// WithRequestID stores a request id in ctx; an empty id is replaced by a new UUID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// WithOperation stores the name of the running operation in ctx
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, ContextKeyOperation, operation)
}

// WithRunID stores a process run id in ctx
func WithRunID(ctx context.Context, runID uuid.UUID) context.Context {
	return context.WithValue(ctx, ContextKeyRunID, runID)
}

// RequestID returns the request id stored in ctx, if any
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyRequestID).(string)
	return id
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getWriter(output string) io.Writer {
	switch output {
	case "stdout":
		return os.Stdout
	case "stderr":
		return os.Stderr
	default:
		if strings.HasPrefix(output, "file:") {
			filename := strings.TrimPrefix(output, "file:")
			file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return os.Stdout
			}
			return file
		}
		return os.Stdout
	}
}

func defaultContextKeys() []ContextKey {
	return []ContextKey{
		ContextKeyRequestID,
		ContextKeyOperation,
		ContextKeyRunID,
	}
}

func extractContextAttrs(ctx context.Context, keys []ContextKey) []slog.Attr {
	attrs := []slog.Attr{}

	for _, key := range keys {
		if val := ctx.Value(key); val != nil {
			keyStr := string(key)
			switch v := val.(type) {
			case string:
				if v != "" {
					attrs = append(attrs, slog.String(keyStr, v))
				}
			case int64:
				attrs = append(attrs, slog.Int64(keyStr, v))
			case uuid.UUID:
				attrs = append(attrs, slog.String(keyStr, v.String()))
			default:
				attrs = append(attrs, slog.Any(keyStr, v))
			}
		}
	}

	return attrs
}

func replaceAttr(config *LogConfig, _ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
		}
	}

	// Rename level key for log aggregators
	if a.Key == slog.LevelKey && config.Format != "text" {
		a.Key = "severity"
	}

	if strings.HasSuffix(a.Key, "_ms") {
		if d, ok := a.Value.Any().(time.Duration); ok {
			a.Value = slog.Float64Value(float64(d.Milliseconds()))
		}
	}

	return a
}
