package persistence

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/shared/infrastructure/database"
)

func setupSQLiteRepo(t *testing.T) *SQLiteItemRepository {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteItemRepository(db)
}

func newTestItem(userID uuid.UUID, text string, capturedAt time.Time, outcome domain.ParseOutcome) domain.CaptureItem {
	return domain.NewCaptureItem(userID, text, outcome, capturedAt)
}

func examOutcome() domain.ParseOutcome {
	return domain.NewParseOutcome(domain.CapturedIntent{
		Category:  domain.CategoryExam,
		Title:     "prova de anatomia amanhã às 14h",
		Date:      "2026-02-20",
		StartTime: "14:00",
	}, 0.85, domain.DefaultConfirmationThreshold, domain.ProvenanceLocal, nil, nil)
}

func billOutcome() domain.ParseOutcome {
	amount := 150.0
	return domain.NewParseOutcome(domain.CapturedIntent{
		Category: domain.CategoryBill,
		Title:    "pagar 150 reais",
		Amount:   &amount,
	}, 0.65, domain.DefaultConfirmationThreshold, domain.ProvenanceLocalFallback, nil, nil)
}

// runRepositoryContract exercises behaviour every ItemRepository backend shares.
func runRepositoryContract(t *testing.T, repo domain.ItemRepository) {
	ctx := context.Background()
	base := time.Date(2026, time.February, 19, 9, 0, 0, 0, time.UTC)

	t.Run("save and find", func(t *testing.T) {
		userID := uuid.New()
		item := newTestItem(userID, "tenho prova de anatomia amanhã às 14h", base, examOutcome())
		require.NoError(t, repo.Save(ctx, item))

		found, err := repo.FindByID(ctx, userID, item.ID)
		require.NoError(t, err)

		assert.Equal(t, item.ID, found.ID)
		assert.Equal(t, userID, found.UserID)
		assert.Equal(t, item.Text, found.Text)
		assert.Equal(t, item.Intent, found.Intent)
		assert.Equal(t, 0.85, found.Confidence)
		assert.Equal(t, domain.ProvenanceLocal, found.Provenance)
		assert.False(t, found.RequiresConfirmation)
		assert.True(t, base.Equal(found.CapturedAt))
		assert.Nil(t, found.ConfirmedAt)
	})

	t.Run("amount survives", func(t *testing.T) {
		userID := uuid.New()
		item := newTestItem(userID, "pagar 150 reais", base, billOutcome())
		require.NoError(t, repo.Save(ctx, item))

		found, err := repo.FindByID(ctx, userID, item.ID)
		require.NoError(t, err)
		require.NotNil(t, found.Intent.Amount)
		assert.Equal(t, 150.0, *found.Intent.Amount)
		assert.True(t, found.RequiresConfirmation)
		assert.Equal(t, domain.ProvenanceLocalFallback, found.Provenance)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("items are scoped per user", func(t *testing.T) {
		owner := uuid.New()
		item := newTestItem(owner, "prova de biologia", base, examOutcome())
		require.NoError(t, repo.Save(ctx, item))

		_, err := repo.FindByID(ctx, uuid.New(), item.ID)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
		assert.ErrorIs(t, repo.MarkConfirmed(ctx, uuid.New(), item.ID, base), domain.ErrItemNotFound)
	})

	t.Run("list newest first and confirm", func(t *testing.T) {
		userID := uuid.New()
		older := newTestItem(userID, "pagar 150 reais", base, billOutcome())
		newer := newTestItem(userID, "prova amanhã às 14h", base.Add(time.Hour), examOutcome())
		require.NoError(t, repo.Save(ctx, older))
		require.NoError(t, repo.Save(ctx, newer))

		items, err := repo.ListByUser(ctx, userID, false)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, newer.ID, items[0].ID)
		assert.Equal(t, older.ID, items[1].ID)

		confirmedAt := base.Add(2 * time.Hour)
		require.NoError(t, repo.MarkConfirmed(ctx, userID, older.ID, confirmedAt))

		pending, err := repo.ListByUser(ctx, userID, false)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, newer.ID, pending[0].ID)

		all, err := repo.ListByUser(ctx, userID, true)
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.NotNil(t, all[1].ConfirmedAt)
		assert.True(t, confirmedAt.Equal(*all[1].ConfirmedAt))
	})

	t.Run("empty list", func(t *testing.T) {
		items, err := repo.ListByUser(ctx, uuid.New(), true)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestSQLiteItemRepository(t *testing.T) {
	runRepositoryContract(t, setupSQLiteRepo(t))
}

func TestSQLiteItemRepository_SaveReplaces(t *testing.T) {
	repo := setupSQLiteRepo(t)
	ctx := context.Background()
	userID := uuid.New()
	item := newTestItem(userID, "prova de biologia", time.Now().UTC(), examOutcome())
	require.NoError(t, repo.Save(ctx, item))

	item.Intent.Title = "Prova de biologia celular"
	require.NoError(t, repo.Save(ctx, item))

	items, err := repo.ListByUser(ctx, userID, true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Prova de biologia celular", items[0].Intent.Title)
}

func TestPostgresItemRepository(t *testing.T) {
	url := os.Getenv("MEDPLANNER_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("MEDPLANNER_TEST_DATABASE_URL not set")
	}
	pool, err := database.OpenPostgres(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	runRepositoryContract(t, NewPostgresItemRepository(pool))
}

func TestRedisItemRepository(t *testing.T) {
	url := os.Getenv("MEDPLANNER_TEST_REDIS_URL")
	if url == "" {
		t.Skip("MEDPLANNER_TEST_REDIS_URL not set")
	}
	client, err := database.OpenRedis(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	runRepositoryContract(t, NewRedisItemRepository(client))
}

func TestItemDocument(t *testing.T) {
	item := newTestItem(uuid.New(), "pagar 150 reais", time.Now(), billOutcome())
	doc := toDocument(item)

	assert.Equal(t, item.ID, doc.ID)
	assert.Equal(t, item, doc.toItem())
	assert.Equal(t, "capture:user:"+item.UserID.String()+":item:"+item.ID.String(), itemKey(item.UserID, item.ID.String()))
	assert.Equal(t, "capture:user:"+item.UserID.String()+":items", indexKey(item.UserID))
}
