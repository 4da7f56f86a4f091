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

// ConfirmItemCommand marks a stored item as reviewed by the user.
type ConfirmItemCommand struct {
	UserID uuid.UUID
	ItemID uuid.UUID
}

// CommandName implements application.Command.
func (ConfirmItemCommand) CommandName() string { return "capture.confirm" }

// ConfirmItemHandler confirms items. Confirming twice keeps the first timestamp.
type ConfirmItemHandler struct {
	repo    domain.ItemRepository
	logger  *slog.Logger
	metrics observability.Metrics
	now     func() time.Time
}

var _ application.CommandHandler[ConfirmItemCommand] = (*ConfirmItemHandler)(nil)

// NewConfirmItemHandler builds a handler.
func NewConfirmItemHandler(repo domain.ItemRepository, logger *slog.Logger, metrics observability.Metrics) *ConfirmItemHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &ConfirmItemHandler{repo: repo, logger: logger, metrics: metrics, now: time.Now}
}

// Handle confirms the item.
func (h *ConfirmItemHandler) Handle(ctx context.Context, cmd ConfirmItemCommand) error {
	item, err := h.repo.FindByID(ctx, cmd.UserID, cmd.ItemID)
	if err != nil {
		return err
	}
	if item.Confirmed() {
		return nil
	}
	if err := h.repo.MarkConfirmed(ctx, cmd.UserID, cmd.ItemID, h.now().UTC()); err != nil {
		return err
	}
	h.metrics.Counter(observability.MetricCaptureConfirmed, 1)
	h.logger.InfoContext(ctx, "capture item confirmed", "item_id", cmd.ItemID, observability.UserIDKey, cmd.UserID)
	return nil
}
