package domain

import "errors"

var (
	// ErrTooShort is returned when the input has fewer than MinInputLength characters.
	ErrTooShort = errors.New("texto muito curto")

	// ErrRemoteUnavailable marks a failed escalation. It never reaches callers of the parser.
	ErrRemoteUnavailable = errors.New("remote parser unavailable")

	// ErrItemNotFound is returned when a stored capture item does not exist.
	ErrItemNotFound = errors.New("capture item not found")
)

// MinInputLength is the minimum trimmed length accepted by the parser.
const MinInputLength = 3

// TooShortMessage is the user-facing text for ErrTooShort.
const TooShortMessage = "Texto muito curto"

// UserMessage returns the text shown to a user for err.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTooShort):
		return TooShortMessage
	case errors.Is(err, ErrItemNotFound):
		return "Item não encontrado"
	default:
		return err.Error()
	}
}
