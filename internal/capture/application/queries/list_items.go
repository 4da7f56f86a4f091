package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/shared/application"
)

// ListItemsQuery lists a user's capture items.
type ListItemsQuery struct {
	UserID           uuid.UUID
	IncludeConfirmed bool
}

// QueryName implements application.Query.
func (ListItemsQuery) QueryName() string { return "capture.list" }

// ListItemsHandler handles ListItemsQuery.
type ListItemsHandler struct {
	repo domain.ItemRepository
}

var _ application.QueryHandler[ListItemsQuery, []CaptureItemDTO] = (*ListItemsHandler)(nil)

// NewListItemsHandler creates a handler.
func NewListItemsHandler(repo domain.ItemRepository) *ListItemsHandler {
	return &ListItemsHandler{repo: repo}
}

// Handle returns the items newest first.
func (h *ListItemsHandler) Handle(ctx context.Context, query ListItemsQuery) ([]CaptureItemDTO, error) {
	items, err := h.repo.ListByUser(ctx, query.UserID, query.IncludeConfirmed)
	if err != nil {
		return nil, err
	}
	dtos := make([]CaptureItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toDTO(item))
	}
	return dtos, nil
}
