package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelInfo, Format: LogFormatText, Output: &buf})

		logger.Info("captured", "category", "exam")

		assert.Contains(t, buf.String(), "captured")
		assert.Contains(t, buf.String(), "category=exam")
	})

	t.Run("json with service attributes", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{
			Level:          LogLevelInfo,
			Format:         LogFormatJSON,
			Output:         &buf,
			ServiceName:    ServiceName,
			ServiceVersion: "1.0.0",
		})

		logger.Info("captured")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "captured", entry["msg"])
		assert.Equal(t, "medplanner", entry["service"])
		assert.Equal(t, "1.0.0", entry["version"])
	})

	t.Run("level filter", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelWarn, Output: &buf})

		logger.Info("hidden")
		logger.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("context ids", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Format: LogFormatJSON, Output: &buf})
		ctx := WithRequestID(WithCorrelationID(context.Background(), "corr-1"), "req-1")

		logger.InfoContext(ctx, "captured")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "corr-1", entry[CorrelationIDKey])
		assert.Equal(t, "req-1", entry[RequestIDKey])
	})

	t.Run("with attrs keeps context ids", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Output: &buf}).With("component", "parser")

		logger.InfoContext(WithCorrelationID(context.Background(), "corr-2"), "captured")

		assert.Contains(t, buf.String(), "component=parser")
		assert.Contains(t, buf.String(), "correlation_id=corr-2")
	})
}

func TestLogConfigFor(t *testing.T) {
	cfg := LogConfigFor("development", "", "")
	assert.Equal(t, LogLevelInfo, cfg.Level)
	assert.Equal(t, LogFormatText, cfg.Format)
	assert.Equal(t, ServiceName, cfg.ServiceName)

	cfg = LogConfigFor("production", "", "")
	assert.Equal(t, LogFormatJSON, cfg.Format)
	assert.True(t, cfg.AddSource)

	cfg = LogConfigFor("production", "DEBUG", "text")
	assert.Equal(t, LogLevelDebug, cfg.Level)
	assert.Equal(t, LogFormatText, cfg.Format)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected slog.Level
	}{
		{LogLevelDebug, slog.LevelDebug},
		{LogLevelInfo, slog.LevelInfo},
		{LogLevelWarn, slog.LevelWarn},
		{LogLevelError, slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			assert.Equal(t, tt.expected, parseSlogLevel(tt.input))
		})
	}
}

func TestLogOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	LogOperation(logger, "capture.add", "user_id", "u1").Info("done")

	assert.Contains(t, buf.String(), "operation=capture.add")
	assert.Contains(t, buf.String(), "user_id=u1")
}

func TestCorrelationID(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "")
	assert.NotEmpty(t, CorrelationIDFromContext(ctx))
	assert.Empty(t, CorrelationIDFromContext(context.Background()))

	ctx = NewRequestContext(context.Background(), "parent")
	assert.Equal(t, "parent", CorrelationIDFromContext(ctx))
	assert.NotEmpty(t, RequestIDFromContext(ctx))
}

func TestTimeOperationResult(t *testing.T) {
	m := NewInMemoryMetrics()

	got, err := TimeOperationResult(context.Background(), nil, m, "capture.add", func() (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	_, err = TimeOperationResult(context.Background(), nil, m, "capture.add", func() (int, error) {
		return 0, errors.New("boom")
	})
	require.Error(t, err)

	tag := T(OperationKey, "capture.add")
	assert.Equal(t, int64(2), m.GetCounter(MetricOperationTotal, tag))
	assert.Equal(t, int64(1), m.GetCounter(MetricOperationErrors, tag))
	assert.Len(t, m.GetTimings(MetricOperationDuration, tag), 2)
}

func TestTimeOperationResult_ExpectedError(t *testing.T) {
	m := NewInMemoryMetrics()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	errRejected := errors.New("too short")

	_, err := TimeOperationResult(context.Background(), logger, m, "capture.add", func() (int, error) {
		return 0, fmt.Errorf("parse: %w", errRejected)
	}, errRejected)
	require.ErrorIs(t, err, errRejected)

	tag := T(OperationKey, "capture.add")
	assert.Equal(t, int64(1), m.GetCounter(MetricOperationTotal, tag))
	assert.Zero(t, m.GetCounter(MetricOperationErrors, tag))
	assert.Empty(t, buf.String())

	_, err = TimeOperationResult(context.Background(), logger, m, "capture.add", func() (int, error) {
		return 0, errors.New("disk full")
	}, errRejected)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Equal(t, int64(1), m.GetCounter(MetricOperationErrors, tag))
}

func TestHealthRegistry(t *testing.T) {
	r := NewHealthRegistry()
	r.Register("store", PingChecker("store", HealthStatusUnhealthy, func(context.Context) error { return nil }))
	r.Register("completion", PingChecker("completion", HealthStatusDegraded, func(context.Context) error {
		return errors.New("no api key")
	}))

	results := r.Check(context.Background())

	assert.Equal(t, []string{"completion", "store"}, r.Names())
	assert.Equal(t, HealthStatusHealthy, results["store"].Status)
	assert.Equal(t, HealthStatusDegraded, results["completion"].Status)
	assert.Contains(t, results["completion"].Message, "no api key")
	assert.Equal(t, HealthStatusDegraded, OverallStatus(results))

	results["store"] = HealthCheckResult{Status: HealthStatusUnhealthy}
	assert.Equal(t, HealthStatusUnhealthy, OverallStatus(results))
	assert.Equal(t, HealthStatusHealthy, OverallStatus(nil))
}
