package observability

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Timer measures one operation and reports it to a logger and a metrics sink.
type Timer struct {
	operation string
	start     time.Time
	logger    *slog.Logger
	metrics   Metrics
	tags      []Tag
	expected  []error
}

// StartTimer starts timing operation.
func StartTimer(operation string) *Timer {
	return &Timer{operation: operation, start: time.Now()}
}

// WithLogger logs the outcome when the timer stops.
func (t *Timer) WithLogger(logger *slog.Logger) *Timer {
	t.logger = logger
	return t
}

// WithMetrics records duration, count and errors when the timer stops.
func (t *Timer) WithMetrics(metrics Metrics) *Timer {
	t.metrics = metrics
	return t
}

// WithTags adds metric tags.
func (t *Timer) WithTags(tags ...Tag) *Timer {
	t.tags = append(t.tags, tags...)
	return t
}

// WithExpected marks errors that are normal outcomes, such as rejected input.
// They are logged at debug level and not counted as failures.
func (t *Timer) WithExpected(errs ...error) *Timer {
	t.expected = append(t.expected, errs...)
	return t
}

func (t *Timer) isExpected(err error) bool {
	for _, e := range t.expected {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// Stop records a successful operation.
func (t *Timer) Stop(ctx context.Context) time.Duration {
	return t.StopWithError(ctx, nil)
}

// StopWithError records the operation, counting it as failed when err is non-nil.
func (t *Timer) StopWithError(ctx context.Context, err error) time.Duration {
	duration := time.Since(t.start)
	expected := err != nil && t.isExpected(err)

	if t.logger != nil {
		switch {
		case expected:
			t.logger.DebugContext(ctx, "operation rejected",
				OperationKey, t.operation,
				DurationKey, duration.Milliseconds(),
				ErrorKey, err.Error(),
			)
		case err != nil:
			t.logger.ErrorContext(ctx, "operation failed",
				OperationKey, t.operation,
				DurationKey, duration.Milliseconds(),
				ErrorKey, err.Error(),
			)
		default:
			t.logger.DebugContext(ctx, "operation completed",
				OperationKey, t.operation,
				DurationKey, duration.Milliseconds(),
			)
		}
	}

	if t.metrics != nil {
		tags := append(append([]Tag{}, t.tags...), T(OperationKey, t.operation))
		t.metrics.Timing(MetricOperationDuration, duration, tags...)
		t.metrics.Counter(MetricOperationTotal, 1, tags...)
		if err != nil && !expected {
			t.metrics.Counter(MetricOperationErrors, 1, tags...)
		}
	}

	return duration
}

// TimeOperationResult times fn and records its outcome. Errors matching
// expected are recorded as rejections rather than failures.
func TimeOperationResult[T any](ctx context.Context, logger *slog.Logger, metrics Metrics, operation string, fn func() (T, error), expected ...error) (T, error) {
	timer := StartTimer(operation).WithLogger(logger).WithMetrics(metrics).WithExpected(expected...)
	result, err := fn()
	timer.StopWithError(ctx, err)
	return result, err
}
