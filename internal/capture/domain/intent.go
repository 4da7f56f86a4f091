package domain

import "strings"

// Category is the kind of planner item a sentence describes.
type Category string

const (
	CategoryEvent   Category = "event"
	CategoryExam    Category = "exam"
	CategoryBill    Category = "bill"
	CategoryWorkout Category = "workout"
	CategoryMeal    Category = "meal"
	CategoryWeight  Category = "weight"
	CategoryTask    Category = "task"
	CategoryNote    Category = "note"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryEvent,
	CategoryExam,
	CategoryBill,
	CategoryWorkout,
	CategoryMeal,
	CategoryWeight,
	CategoryTask,
	CategoryNote,
}

// IsValid reports whether c belongs to the closed category set.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the category identifier.
func (c Category) String() string {
	return string(c)
}

// ParseCategory maps s to a category, degrading unknown values to CategoryEvent.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.IsValid() {
		return c
	}
	return CategoryEvent
}

// MaxTitleLength is the maximum number of characters kept from the input text.
const MaxTitleLength = 100

// CapturedIntent is the structured interpretation of a free-text sentence.
// Empty strings and a nil Amount mean the field was not recognized.
type CapturedIntent struct {
	Category  Category `json:"category"`
	Title     string   `json:"title"`
	Date      string   `json:"date,omitempty"`
	StartTime string   `json:"startTime,omitempty"`
	EndTime   string   `json:"endTime,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
	Details   string   `json:"details,omitempty"`
}

// HasDate reports whether a date was recognized.
func (i CapturedIntent) HasDate() bool {
	return i.Date != ""
}

// HasStartTime reports whether a time of day was recognized.
func (i CapturedIntent) HasStartTime() bool {
	return i.StartTime != ""
}

// HasAmount reports whether a monetary amount was recognized.
func (i CapturedIntent) HasAmount() bool {
	return i.Amount != nil
}

// TitleFromText trims text and truncates it to MaxTitleLength runes.
func TitleFromText(text string) string {
	title := strings.TrimSpace(text)
	runes := []rune(title)
	if len(runes) > MaxTitleLength {
		title = strings.TrimSpace(string(runes[:MaxTitleLength]))
	}
	return title
}
