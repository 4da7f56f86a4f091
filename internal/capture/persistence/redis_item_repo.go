package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
)

// RedisItemRepository keeps one collection per user in Redis. Each item is a JSON
// document under capture:user:{user}:item:{id}; a sorted set per user orders
// them by capture time.
type RedisItemRepository struct {
	client *redis.Client
}

// NewRedisItemRepository creates a repository.
func NewRedisItemRepository(client *redis.Client) *RedisItemRepository {
	return &RedisItemRepository{client: client}
}

func itemKey(userID uuid.UUID, id string) string {
	return fmt.Sprintf("capture:user:%s:item:%s", userID, id)
}

func indexKey(userID uuid.UUID) string {
	return fmt.Sprintf("capture:user:%s:items", userID)
}

// itemDocument is the stored JSON form of a capture item.
type itemDocument struct {
	ID                   uuid.UUID             `json:"id"`
	UserID               uuid.UUID             `json:"userId"`
	Text                 string                `json:"text"`
	Intent               domain.CapturedIntent `json:"intent"`
	Confidence           float64               `json:"confidence"`
	Provenance           domain.Provenance     `json:"provenance"`
	RequiresConfirmation bool                  `json:"requiresConfirmation"`
	CapturedAt           time.Time             `json:"capturedAt"`
	ConfirmedAt          *time.Time            `json:"confirmedAt,omitempty"`
}

func toDocument(item domain.CaptureItem) itemDocument {
	return itemDocument(item)
}

func (d itemDocument) toItem() domain.CaptureItem {
	item := domain.CaptureItem(d)
	item.Intent.Category = domain.ParseCategory(string(d.Intent.Category))
	return item
}

// Save writes the item document and indexes it.
func (r *RedisItemRepository) Save(ctx context.Context, item domain.CaptureItem) error {
	data, err := json.Marshal(toDocument(item))
	if err != nil {
		return fmt.Errorf("encode capture item: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, itemKey(item.UserID, item.ID.String()), data, 0)
		pipe.ZAdd(ctx, indexKey(item.UserID), redis.Z{
			Score:  float64(item.CapturedAt.UnixNano()),
			Member: item.ID.String(),
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("save capture item: %w", err)
	}
	return nil
}

// FindByID returns one of the user's items.
func (r *RedisItemRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.CaptureItem, error) {
	data, err := r.client.Get(ctx, itemKey(userID, id.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find capture item: %w", err)
	}
	var doc itemDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode capture item: %w", err)
	}
	item := doc.toItem()
	return &item, nil
}

// ListByUser returns the user's items, newest first.
func (r *RedisItemRepository) ListByUser(ctx context.Context, userID uuid.UUID, includeConfirmed bool) ([]domain.CaptureItem, error) {
	ids, err := r.client.ZRevRange(ctx, indexKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list capture items: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = itemKey(userID, id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list capture items: %w", err)
	}

	var items []domain.CaptureItem
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// Index entry without a document.
			continue
		}
		var doc itemDocument
		if err := json.Unmarshal([]byte(s), &doc); err != nil {
			return nil, fmt.Errorf("decode capture item: %w", err)
		}
		if !includeConfirmed && doc.ConfirmedAt != nil {
			continue
		}
		items = append(items, doc.toItem())
	}
	return items, nil
}

// MarkConfirmed records that the user confirmed an item.
func (r *RedisItemRepository) MarkConfirmed(ctx context.Context, userID, id uuid.UUID, confirmedAt time.Time) error {
	key := itemKey(userID, id.String())
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return domain.ErrItemNotFound
		}
		if err != nil {
			return err
		}
		var doc itemDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decode capture item: %w", err)
		}
		at := confirmedAt.UTC()
		doc.ConfirmedAt = &at
		updated, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, domain.ErrItemNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("confirm capture item: %w", err)
	}
	return nil
}
