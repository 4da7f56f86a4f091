package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ItemRepository handles persistence for capture items.
type ItemRepository interface {
	Save(ctx context.Context, item CaptureItem) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*CaptureItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID, includeConfirmed bool) ([]CaptureItem, error)
	MarkConfirmed(ctx context.Context, userID, id uuid.UUID, confirmedAt time.Time) error
}
