package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
	"github.com/giovannadias1704-collab/medplanner-sub000/pkg/observability"
)

// Completer sends a prompt to a generative model and returns its text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Parser turns quick-capture sentences into parse outcomes. Local heuristics run
// first; the completer is only consulted when local confidence is below the
// confirmation threshold. Parser holds no per-call state and is safe for
// concurrent use.
type Parser struct {
	classifier *Classifier
	completer  Completer
	logger     *slog.Logger
	metrics    observability.Metrics
	now        func() time.Time
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithClock sets the source of the reference date used by ParseUserInput.
func WithClock(now func() time.Time) ParserOption {
	return func(p *Parser) {
		p.now = now
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(metrics observability.Metrics) ParserOption {
	return func(p *Parser) {
		p.metrics = metrics
	}
}

// NewParser creates a parser. completer may be nil, in which case low-confidence
// sentences fall back to the local result.
func NewParser(classifier *Classifier, completer Completer, logger *slog.Logger, opts ...ParserOption) *Parser {
	if classifier == nil {
		classifier = NewClassifier(nil, DefaultScoring())
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Parser{
		classifier: classifier,
		completer:  completer,
		logger:     logger,
		metrics:    observability.NoopMetrics{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseUserInput parses text using the current time as the reference date.
// The only error it returns is domain.ErrTooShort.
func (p *Parser) ParseUserInput(ctx context.Context, text string) (*domain.ParseOutcome, error) {
	return p.ParseAt(ctx, text, p.now())
}

// ParseAt parses text relative to ref.
func (p *Parser) ParseAt(ctx context.Context, text string, ref time.Time) (*domain.ParseOutcome, error) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < domain.MinInputLength {
		p.metrics.Counter(observability.MetricCaptureRejected, 1)
		return nil, domain.ErrTooShort
	}

	local := p.classifier.Classify(trimmed, ref)
	if !local.RequiresConfirmation {
		return p.accept(ctx, local), nil
	}

	p.metrics.Counter(observability.MetricCaptureEscalations, 1)
	remote, err := p.escalate(ctx, trimmed, ref)
	if err != nil {
		p.logger.WarnContext(ctx, "falling back to local parse",
			"category", local.Intent.Category,
			"confidence", local.Confidence,
			"error", err,
		)
		return p.accept(ctx, local.WithProvenance(domain.ProvenanceLocalFallback)), nil
	}
	return p.accept(ctx, remote), nil
}

func (p *Parser) escalate(ctx context.Context, text string, ref time.Time) (domain.ParseOutcome, error) {
	if p.completer == nil {
		return domain.ParseOutcome{}, fmt.Errorf("%w: no completer configured", domain.ErrRemoteUnavailable)
	}

	start := time.Now()
	reply, err := p.completer.Complete(ctx, BuildPrompt(text, ref))
	p.metrics.Timing(observability.MetricCaptureRemoteDuration, time.Since(start))
	if err != nil {
		return domain.ParseOutcome{}, fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}

	outcome, err := DecodeRemoteOutcome(reply, p.classifier.Scoring().ConfirmationThreshold)
	if err != nil {
		return domain.ParseOutcome{}, fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}
	return outcome, nil
}

func (p *Parser) accept(ctx context.Context, outcome domain.ParseOutcome) *domain.ParseOutcome {
	p.metrics.Counter(observability.MetricCaptureParsed, 1, observability.T("provenance", string(outcome.Provenance)))
	p.logger.DebugContext(ctx, "parsed capture",
		"category", outcome.Intent.Category,
		"confidence", outcome.Confidence,
		"provenance", outcome.Provenance,
		"requires_confirmation", outcome.RequiresConfirmation,
	)
	return &outcome
}
