package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
)

// PostgresItemRepository stores capture items in Postgres.
type PostgresItemRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresItemRepository creates a repository.
func NewPostgresItemRepository(pool *pgxpool.Pool) *PostgresItemRepository {
	return &PostgresItemRepository{pool: pool}
}

// Save inserts or updates an item.
func (r *PostgresItemRepository) Save(ctx context.Context, item domain.CaptureItem) error {
	query := `
		INSERT INTO capture_items (` + itemColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (id) DO UPDATE SET
			category = EXCLUDED.category,
			title = EXCLUDED.title,
			date = EXCLUDED.date,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			amount = EXCLUDED.amount,
			details = EXCLUDED.details,
			confidence = EXCLUDED.confidence,
			provenance = EXCLUDED.provenance,
			requires_confirmation = EXCLUDED.requires_confirmation,
			confirmed_at = EXCLUDED.confirmed_at
	`
	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.UserID,
		item.Text,
		string(item.Intent.Category),
		item.Intent.Title,
		item.Intent.Date,
		item.Intent.StartTime,
		item.Intent.EndTime,
		item.Intent.Amount,
		item.Intent.Details,
		item.Confidence,
		string(item.Provenance),
		item.RequiresConfirmation,
		item.CapturedAt,
		item.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("save capture item: %w", err)
	}
	return nil
}

// FindByID returns one of the user's items.
func (r *PostgresItemRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.CaptureItem, error) {
	query := `SELECT ` + itemColumns + ` FROM capture_items WHERE id = $1 AND user_id = $2`
	item, err := scanPostgresItem(r.pool.QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find capture item: %w", err)
	}
	return &item, nil
}

// ListByUser returns the user's items, newest first.
func (r *PostgresItemRepository) ListByUser(ctx context.Context, userID uuid.UUID, includeConfirmed bool) ([]domain.CaptureItem, error) {
	query := `SELECT ` + itemColumns + ` FROM capture_items WHERE user_id = $1`
	if !includeConfirmed {
		query += " AND confirmed_at IS NULL"
	}
	query += " ORDER BY captured_at DESC"

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list capture items: %w", err)
	}
	defer rows.Close()

	var items []domain.CaptureItem
	for rows.Next() {
		item, err := scanPostgresItem(rows)
		if err != nil {
			return nil, fmt.Errorf("list capture items: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list capture items: %w", err)
	}
	return items, nil
}

// MarkConfirmed records that the user confirmed an item.
func (r *PostgresItemRepository) MarkConfirmed(ctx context.Context, userID, id uuid.UUID, confirmedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE capture_items SET confirmed_at = $1 WHERE id = $2 AND user_id = $3`,
		confirmedAt, id, userID,
	)
	if err != nil {
		return fmt.Errorf("confirm capture item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func scanPostgresItem(row pgx.Row) (domain.CaptureItem, error) {
	var (
		item                 domain.CaptureItem
		category, provenance string
	)
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Text,
		&category,
		&item.Intent.Title,
		&item.Intent.Date,
		&item.Intent.StartTime,
		&item.Intent.EndTime,
		&item.Intent.Amount,
		&item.Intent.Details,
		&item.Confidence,
		&provenance,
		&item.RequiresConfirmation,
		&item.CapturedAt,
		&item.ConfirmedAt,
	)
	if err != nil {
		return item, err
	}
	item.Intent.Category = domain.ParseCategory(category)
	item.Provenance = domain.Provenance(provenance)
	return item, nil
}
