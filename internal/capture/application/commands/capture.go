package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/shared/application"
	"github.com/giovannadias1704-collab/medplanner-sub000/pkg/observability"
)

// Parser turns a quick-capture sentence into a parse outcome.
type Parser interface {
	ParseUserInput(ctx context.Context, text string) (*domain.ParseOutcome, error)
}

// CaptureItemCommand contains the sentence typed by the user.
type CaptureItemCommand struct {
	UserID uuid.UUID
	Text   string
}

// CommandName implements application.Command.
func (CaptureItemCommand) CommandName() string { return "capture.add" }

// CaptureItemResult returns the stored item ID with its outcome.
type CaptureItemResult struct {
	ItemID  uuid.UUID
	Outcome domain.ParseOutcome
}

// CaptureItemHandler parses a sentence and saves it to the user's collection.
type CaptureItemHandler struct {
	parser  Parser
	repo    domain.ItemRepository
	logger  *slog.Logger
	metrics observability.Metrics
	now     func() time.Time
}

var _ application.ResultCommandHandler[CaptureItemCommand, *CaptureItemResult] = (*CaptureItemHandler)(nil)

// NewCaptureItemHandler builds a handler.
func NewCaptureItemHandler(parser Parser, repo domain.ItemRepository, logger *slog.Logger, metrics observability.Metrics) *CaptureItemHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &CaptureItemHandler{
		parser:  parser,
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Handle parses and persists. Input that is too short returns domain.ErrTooShort
// and stores nothing.
func (h *CaptureItemHandler) Handle(ctx context.Context, cmd CaptureItemCommand) (*CaptureItemResult, error) {
	return observability.TimeOperationResult(ctx, h.logger, h.metrics, cmd.CommandName(), func() (*CaptureItemResult, error) {
		return h.handle(ctx, cmd)
	}, domain.ErrTooShort)
}

func (h *CaptureItemHandler) handle(ctx context.Context, cmd CaptureItemCommand) (*CaptureItemResult, error) {
	outcome, err := h.parser.ParseUserInput(ctx, cmd.Text)
	if err != nil {
		return nil, err
	}

	item := domain.NewCaptureItem(cmd.UserID, cmd.Text, *outcome, h.now().UTC())
	if err := h.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	h.metrics.Counter(observability.MetricCaptureStored, 1, observability.T("category", string(item.Intent.Category)))
	h.logger.InfoContext(ctx, "capture item stored",
		"item_id", item.ID,
		observability.UserIDKey, cmd.UserID,
		"category", item.Intent.Category,
		"provenance", item.Provenance,
	)
	return &CaptureItemResult{ItemID: item.ID, Outcome: *outcome}, nil
}
