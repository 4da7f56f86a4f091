package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
)

const itemColumns = `id, user_id, text, category, title, date, start_time, end_time, amount, details,
	confidence, provenance, requires_confirmation, captured_at, confirmed_at`

// timestampLayout has a fixed width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteItemRepository stores capture items in SQLite.
type SQLiteItemRepository struct {
	db *sql.DB
}

// NewSQLiteItemRepository creates a repository on a database with the capture schema applied.
func NewSQLiteItemRepository(db *sql.DB) *SQLiteItemRepository {
	return &SQLiteItemRepository{db: db}
}

// Save inserts or replaces an item.
func (r *SQLiteItemRepository) Save(ctx context.Context, item domain.CaptureItem) error {
	query := `
		INSERT OR REPLACE INTO capture_items (` + itemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID.String(),
		item.UserID.String(),
		item.Text,
		string(item.Intent.Category),
		item.Intent.Title,
		item.Intent.Date,
		item.Intent.StartTime,
		item.Intent.EndTime,
		nullFloat(item.Intent.Amount),
		item.Intent.Details,
		item.Confidence,
		string(item.Provenance),
		boolToInt(item.RequiresConfirmation),
		item.CapturedAt.UTC().Format(timestampLayout),
		nullTime(item.ConfirmedAt),
	)
	if err != nil {
		return fmt.Errorf("save capture item: %w", err)
	}
	return nil
}

// FindByID returns one of the user's items.
func (r *SQLiteItemRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.CaptureItem, error) {
	query := `SELECT ` + itemColumns + ` FROM capture_items WHERE id = ? AND user_id = ?`
	item, err := scanSQLiteItem(r.db.QueryRowContext(ctx, query, id.String(), userID.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find capture item: %w", err)
	}
	return &item, nil
}

// ListByUser returns the user's items, newest first.
func (r *SQLiteItemRepository) ListByUser(ctx context.Context, userID uuid.UUID, includeConfirmed bool) ([]domain.CaptureItem, error) {
	query := `SELECT ` + itemColumns + ` FROM capture_items WHERE user_id = ?`
	if !includeConfirmed {
		query += " AND confirmed_at IS NULL"
	}
	query += " ORDER BY captured_at DESC"

	rows, err := r.db.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list capture items: %w", err)
	}
	defer rows.Close()

	var items []domain.CaptureItem
	for rows.Next() {
		item, err := scanSQLiteItem(rows)
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
func (r *SQLiteItemRepository) MarkConfirmed(ctx context.Context, userID, id uuid.UUID, confirmedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE capture_items SET confirmed_at = ? WHERE id = ? AND user_id = ?`,
		confirmedAt.UTC().Format(timestampLayout), id.String(), userID.String(),
	)
	if err != nil {
		return fmt.Errorf("confirm capture item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("confirm capture item: %w", err)
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteItem(row rowScanner) (domain.CaptureItem, error) {
	var (
		item                 domain.CaptureItem
		idStr, userIDStr     string
		category, provenance string
		amount               sql.NullFloat64
		requiresConfirmation int
		capturedAt           string
		confirmedAt          sql.NullString
	)
	err := row.Scan(
		&idStr,
		&userIDStr,
		&item.Text,
		&category,
		&item.Intent.Title,
		&item.Intent.Date,
		&item.Intent.StartTime,
		&item.Intent.EndTime,
		&amount,
		&item.Intent.Details,
		&item.Confidence,
		&provenance,
		&requiresConfirmation,
		&capturedAt,
		&confirmedAt,
	)
	if err != nil {
		return item, err
	}

	if item.ID, err = uuid.Parse(idStr); err != nil {
		return item, err
	}
	if item.UserID, err = uuid.Parse(userIDStr); err != nil {
		return item, err
	}
	if item.CapturedAt, err = time.Parse(timestampLayout, capturedAt); err != nil {
		return item, err
	}
	if confirmedAt.Valid {
		t, err := time.Parse(timestampLayout, confirmedAt.String)
		if err != nil {
			return item, err
		}
		item.ConfirmedAt = &t
	}
	if amount.Valid {
		v := amount.Float64
		item.Intent.Amount = &v
	}
	item.Intent.Category = domain.ParseCategory(category)
	item.Provenance = domain.Provenance(provenance)
	item.RequiresConfirmation = requiresConfirmation == 1
	return item, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(timestampLayout), Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
