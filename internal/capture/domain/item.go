package domain

import (
	"time"

	"github.com/google/uuid"
)

// CaptureItem is a parsed sentence saved to a user's collection.
type CaptureItem struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Text                 string
	Intent               CapturedIntent
	Confidence           float64
	Provenance           Provenance
	RequiresConfirmation bool
	CapturedAt           time.Time
	ConfirmedAt          *time.Time
}

// NewCaptureItem builds an item from a parse outcome.
func NewCaptureItem(userID uuid.UUID, text string, outcome ParseOutcome, capturedAt time.Time) CaptureItem {
	return CaptureItem{
		ID:                   uuid.New(),
		UserID:               userID,
		Text:                 text,
		Intent:               outcome.Intent,
		Confidence:           outcome.Confidence,
		Provenance:           outcome.Provenance,
		RequiresConfirmation: outcome.RequiresConfirmation,
		CapturedAt:           capturedAt,
	}
}

// Confirmed reports whether the user confirmed the item.
func (i CaptureItem) Confirmed() bool {
	return i.ConfirmedAt != nil
}

// Pending reports whether the item still waits for confirmation.
func (i CaptureItem) Pending() bool {
	return i.RequiresConfirmation && !i.Confirmed()
}
