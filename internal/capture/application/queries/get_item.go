package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/shared/application"
)

// GetItemQuery fetches one capture item.
type GetItemQuery struct {
	UserID uuid.UUID
	ItemID uuid.UUID
}

// QueryName implements application.Query.
func (GetItemQuery) QueryName() string { return "capture.show" }

// GetItemHandler handles GetItemQuery.
type GetItemHandler struct {
	repo domain.ItemRepository
}

var _ application.QueryHandler[GetItemQuery, *CaptureItemDTO] = (*GetItemHandler)(nil)

// NewGetItemHandler creates a handler.
func NewGetItemHandler(repo domain.ItemRepository) *GetItemHandler {
	return &GetItemHandler{repo: repo}
}

// Handle returns domain.ErrItemNotFound when the item does not belong to the user.
func (h *GetItemHandler) Handle(ctx context.Context, query GetItemQuery) (*CaptureItemDTO, error) {
	item, err := h.repo.FindByID(ctx, query.UserID, query.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	dto := toDTO(*item)
	return &dto, nil
}
