package completion

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/giovannadias1704-collab/medplanner-sub000/pkg/observability"
)

// BreakerConfig configures BreakerCompleter.
type BreakerConfig struct {
	Name string
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures uint32
	// OpenTimeout is how long the circuit stays open before a trial call.
	OpenTimeout time.Duration
}

// DefaultBreakerConfig returns the defaults used when configuration is empty.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:        "anthropic",
		MaxFailures: 3,
		OpenTimeout: 30 * time.Second,
	}
}

// BreakerCompleter stops calling a failing completer until it has had time to recover.
type BreakerCompleter struct {
	next    Completer
	breaker *gobreaker.CircuitBreaker[string]
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewBreakerCompleter wraps next with a circuit breaker.
func NewBreakerCompleter(next Completer, cfg BreakerConfig, logger *slog.Logger, metrics observability.Metrics) *BreakerCompleter {
	defaults := DefaultBreakerConfig()
	if cfg.Name == "" {
		cfg.Name = defaults.Name
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = defaults.MaxFailures
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}

	c := &BreakerCompleter{next: next, logger: logger, metrics: metrics}
	c.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			// A caller giving up is not a fault of the model.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("completion circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
			c.metrics.Counter(observability.MetricBreakerStateChanges, 1, observability.T("to", to.String()))
			c.metrics.Gauge(observability.MetricBreakerState, float64(to))
		},
	})
	return c
}

// Complete calls the wrapped completer unless the circuit is open.
func (c *BreakerCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	reply, err := c.breaker.Execute(func() (string, error) {
		return c.next.Complete(ctx, prompt)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.metrics.Counter(observability.MetricBreakerRejected, 1)
		return "", ErrCircuitOpen
	}
	return reply, err
}

// State returns the breaker state name.
func (c *BreakerCompleter) State() string {
	return c.breaker.State().String()
}
