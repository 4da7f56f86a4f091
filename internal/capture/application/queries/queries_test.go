package queries

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/persistence"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/shared/infrastructure/database"
)

var capturedAt = time.Date(2026, time.February, 19, 9, 30, 0, 0, time.UTC)

func seed(t *testing.T) (domain.ItemRepository, uuid.UUID, []domain.CaptureItem) {
	t.Helper()
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := persistence.NewSQLiteItemRepository(db)

	userID := uuid.New()
	amount := 150.0
	outcomes := []domain.ParseOutcome{
		domain.NewParseOutcome(domain.CapturedIntent{Category: domain.CategoryBill, Title: "pagar 150 reais", Amount: &amount}, 0.65, domain.DefaultConfirmationThreshold, domain.ProvenanceLocalFallback, nil, nil),
		domain.NewParseOutcome(domain.CapturedIntent{Category: domain.CategoryExam, Title: "prova amanhã às 14h", Date: "2026-02-20", StartTime: "14:00"}, 0.85, domain.DefaultConfirmationThreshold, domain.ProvenanceLocal, nil, nil),
	}
	items := make([]domain.CaptureItem, 0, len(outcomes))
	for i, outcome := range outcomes {
		item := domain.NewCaptureItem(userID, outcome.Intent.Title, outcome, capturedAt.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Save(ctx, item))
		items = append(items, item)
	}
	return repo, userID, items
}

func TestListItemsHandler(t *testing.T) {
	ctx := context.Background()
	repo, userID, items := seed(t)
	handler := NewListItemsHandler(repo)

	dtos, err := handler.Handle(ctx, ListItemsQuery{UserID: userID})
	require.NoError(t, err)
	require.Len(t, dtos, 2)
	assert.Equal(t, items[1].ID, dtos[0].ID)
	assert.Equal(t, items[0].ID, dtos[1].ID)
	assert.True(t, dtos[1].Pending)
	assert.False(t, dtos[0].Pending)

	require.NoError(t, repo.MarkConfirmed(ctx, userID, items[0].ID, capturedAt.Add(time.Hour)))

	dtos, err = handler.Handle(ctx, ListItemsQuery{UserID: userID})
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, items[1].ID, dtos[0].ID)

	dtos, err = handler.Handle(ctx, ListItemsQuery{UserID: userID, IncludeConfirmed: true})
	require.NoError(t, err)
	assert.Len(t, dtos, 2)

	dtos, err = handler.Handle(ctx, ListItemsQuery{UserID: uuid.New(), IncludeConfirmed: true})
	require.NoError(t, err)
	assert.Empty(t, dtos)
}

func TestGetItemHandler(t *testing.T) {
	ctx := context.Background()
	repo, userID, items := seed(t)
	handler := NewGetItemHandler(repo)

	dto, err := handler.Handle(ctx, GetItemQuery{UserID: userID, ItemID: items[0].ID})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryBill, dto.Category)
	require.NotNil(t, dto.Amount)
	assert.Equal(t, 150.0, *dto.Amount)
	assert.Equal(t, domain.ProvenanceLocalFallback, dto.Provenance)
	assert.Equal(t, "2026-02-19T09:30:00Z", dto.CapturedAt)
	assert.Nil(t, dto.ConfirmedAt)

	_, err = handler.Handle(ctx, GetItemQuery{UserID: uuid.New(), ItemID: items[0].ID})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestToDTO_Confirmed(t *testing.T) {
	confirmedAt := capturedAt.Add(2 * time.Hour)
	item := domain.CaptureItem{
		ID:                   uuid.New(),
		Intent:               domain.CapturedIntent{Category: domain.CategoryWorkout, Title: "treino"},
		RequiresConfirmation: true,
		CapturedAt:           capturedAt,
		ConfirmedAt:          &confirmedAt,
	}

	dto := toDTO(item)
	require.NotNil(t, dto.ConfirmedAt)
	assert.Equal(t, "2026-02-19T11:30:00Z", *dto.ConfirmedAt)
	assert.False(t, dto.Pending)
}
