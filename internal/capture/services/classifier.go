package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
)

// Scoring holds the confidence weights of the local classifier.
type Scoring struct {
	// BaseConfidence is the score of a sentence with no extracted signal.
	BaseConfidence float64

	// DateWeight is added when a date was resolved.
	DateWeight float64

	// AmountWeight is added when an amount was extracted.
	AmountWeight float64

	// TimeWeight is added when a time of day was extracted.
	TimeWeight float64

	// ConfirmationThreshold is the confidence below which results need confirmation.
	ConfirmationThreshold float64
}

// DefaultScoring returns the product defaults.
func DefaultScoring() Scoring {
	return Scoring{
		BaseConfidence:        0.5,
		DateWeight:            0.2,
		AmountWeight:          0.15,
		TimeWeight:            0.15,
		ConfirmationThreshold: domain.DefaultConfirmationThreshold,
	}
}

// Score computes the confidence for the given extracted signals.
func (s Scoring) Score(hasDate, hasAmount, hasTime bool) float64 {
	score := s.BaseConfidence
	if hasDate {
		score += s.DateWeight
	}
	if hasAmount {
		score += s.AmountWeight
	}
	if hasTime {
		score += s.TimeWeight
	}
	score = math.Min(score, 1.0)
	return math.Round(score*100) / 100
}

// CategoryRule maps a keyword pattern to a category.
type CategoryRule struct {
	Category domain.Category
	Pattern  *regexp.Regexp
}

// CategoryRules is evaluated in order against lowercased text; the first match wins.
var CategoryRules = []CategoryRule{
	{domain.CategoryExam, regexp.MustCompile(`prova|avalia[çc][ãa]o|teste|exame`)},
	{domain.CategoryBill, regexp.MustCompile(`pagar|conta|boleto|vencimento`)},
	{domain.CategoryWorkout, regexp.MustCompile(`treino|academia|exerc[íi]cio|malhar`)},
	{domain.CategoryWeight, regexp.MustCompile(`peso|pesei|balan[çc]a|\d\s*kg\b|\bkg\b`)},
	{domain.CategoryMeal, regexp.MustCompile(`almo[çc]o|jantar|janta|caf[ée] da manh[ãa]|lanche|refei[çc][ãa]o|\bcomi\b`)},
}

var (
	timePattern   = regexp.MustCompile(`\b([01]?\d|2[0-3])(?:h([0-5]\d)?|:([0-5]\d)\b)`)
	// clockPattern covers clock-shaped tokens, valid or not ("24:00", "25h").
	clockPattern  = regexp.MustCompile(`\b\d{1,2}(?::\d{2}|h\d{0,2})\b`)
	amountPattern = regexp.MustCompile(`(?:r\$|\$)?\s*\b(\d{1,3}(?:\.\d{3})+(?:,\d{2})?|\d+(?:[.,]\d{2})?)\b`)
)

// DetectCategory returns the category of the first matching rule, or event.
func DetectCategory(text string) domain.Category {
	lower := strings.ToLower(text)
	for _, rule := range CategoryRules {
		if rule.Pattern.MatchString(lower) {
			return rule.Category
		}
	}
	return domain.CategoryEvent
}

// ExtractTime returns the first time of day in text as HH:MM.
func ExtractTime(text string) (string, bool) {
	m := timePattern.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return "", false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	minutes := m[2] + m[3]
	if minutes == "" {
		minutes = "00"
	}
	return fmt.Sprintf("%02d:%s", hour, minutes), true
}

// ExtractAmount returns the first monetary value in text. Numbers that are part
// of a time or date expression are ignored.
func ExtractAmount(text string) (float64, bool) {
	masked := maskPatterns(strings.ToLower(text), append([]*regexp.Regexp{timePattern, clockPattern}, dateExpressionPatterns...))
	m := amountPattern.FindStringSubmatch(masked)
	if m == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(normalizeDecimal(m[1]), 64)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}

// normalizeDecimal converts Brazilian number formats to a Go float literal.
func normalizeDecimal(s string) string {
	if strings.Count(s, ".") > 0 && (strings.Contains(s, ",") || len(s)-strings.LastIndex(s, ".") == 4) {
		s = strings.ReplaceAll(s, ".", "")
	}
	return strings.Replace(s, ",", ".", 1)
}

func maskPatterns(text string, patterns []*regexp.Regexp) string {
	masked := []byte(text)
	for _, re := range patterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			for i := loc[0]; i < loc[1]; i++ {
				masked[i] = ' '
			}
		}
	}
	return string(masked)
}

// Classifier is the local heuristic stage of the quick-capture parser.
type Classifier struct {
	dates   *DateResolver
	scoring Scoring
}

// NewClassifier creates a classifier using the given date resolver and scoring.
func NewClassifier(dates *DateResolver, scoring Scoring) *Classifier {
	if dates == nil {
		dates = NewDateResolver(nil)
	}
	return &Classifier{dates: dates, scoring: scoring}
}

// Scoring returns the weights the classifier scores with.
func (c *Classifier) Scoring() Scoring {
	return c.scoring
}

// Classify extracts an intent from text relative to ref. It never fails; fields
// that cannot be recognized are left empty.
func (c *Classifier) Classify(text string, ref time.Time) domain.ParseOutcome {
	intent := domain.CapturedIntent{
		Category: DetectCategory(text),
		Title:    domain.TitleFromText(text),
		Date:     c.dates.ResolveISO(text, ref),
	}
	if startTime, ok := ExtractTime(text); ok {
		intent.StartTime = startTime
	}
	if amount, ok := ExtractAmount(text); ok {
		intent.Amount = &amount
	}

	confidence := c.scoring.Score(intent.HasDate(), intent.HasAmount(), intent.HasStartTime())
	return domain.NewParseOutcome(intent, confidence, c.scoring.ConfirmationThreshold, domain.ProvenanceLocal, nil, nil)
}
