package queries

import (
	"time"

	"github.com/google/uuid"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
)

// CaptureItemDTO is the read model of a stored capture item.
type CaptureItemDTO struct {
	ID                   uuid.UUID         `json:"id"`
	Text                 string            `json:"text"`
	Category             domain.Category   `json:"category"`
	Title                string            `json:"title"`
	Date                 string            `json:"date,omitempty"`
	StartTime            string            `json:"startTime,omitempty"`
	EndTime              string            `json:"endTime,omitempty"`
	Amount               *float64          `json:"amount,omitempty"`
	Details              string            `json:"details,omitempty"`
	Confidence           float64           `json:"confidence"`
	Provenance           domain.Provenance `json:"provenance"`
	RequiresConfirmation bool              `json:"requiresConfirmation"`
	Pending              bool              `json:"pending"`
	CapturedAt           string            `json:"capturedAt"`
	ConfirmedAt          *string           `json:"confirmedAt,omitempty"`
}

func toDTO(item domain.CaptureItem) CaptureItemDTO {
	dto := CaptureItemDTO{
		ID:                   item.ID,
		Text:                 item.Text,
		Category:             item.Intent.Category,
		Title:                item.Intent.Title,
		Date:                 item.Intent.Date,
		StartTime:            item.Intent.StartTime,
		EndTime:              item.Intent.EndTime,
		Amount:               item.Intent.Amount,
		Details:              item.Intent.Details,
		Confidence:           item.Confidence,
		Provenance:           item.Provenance,
		RequiresConfirmation: item.RequiresConfirmation,
		Pending:              item.Pending(),
		CapturedAt:           item.CapturedAt.Format(time.RFC3339),
	}
	if item.ConfirmedAt != nil {
		v := item.ConfirmedAt.Format(time.RFC3339)
		dto.ConfirmedAt = &v
	}
	return dto
}
