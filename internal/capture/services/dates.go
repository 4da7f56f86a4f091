package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules"
	"github.com/olebedev/when/rules/br"
)

// DateLayout is the ISO calendar date layout used for captured dates.
const DateLayout = "2006-01-02"

// DateMatch is a date found by a DateExtractor along with the text it came from.
type DateMatch struct {
	Date time.Time
	Text string
}

// DateExtractor is a general-purpose natural-language date pass.
type DateExtractor interface {
	Extract(text string, ref time.Time) (DateMatch, bool)
}

// WhenExtractor extracts dates with olebedev/when. Only full weekday names,
// "N de <mês>" dates and "em N dias" offsets match; casual words and
// DD/MM are left to the later resolver stages.
type WhenExtractor struct {
	parser *when.Parser
}

// NewWhenExtractor creates an extractor for weekday names, "N de <mês>" dates
// and "em N dias" offsets.
func NewWhenExtractor() *WhenExtractor {
	parser := when.New(nil)
	parser.Add(
		weekdayRule{},
		monthDateRule(),
		br.Deadline(rules.Override),
	)
	return &WhenExtractor{parser: parser}
}

// subDayOffsetPattern marks offsets ("em 2 horas") that name a time, not a date.
var subDayOffsetPattern = regexp.MustCompile(`segundos?|min(?:uto)?s?|horas?`)

// Extract returns the first date expression recognized in text.
func (e *WhenExtractor) Extract(text string, ref time.Time) (match DateMatch, ok bool) {
	defer func() {
		if recover() != nil {
			match, ok = DateMatch{}, false
		}
	}()

	result, err := e.parser.Parse(text, ref)
	if err != nil || result == nil {
		return DateMatch{}, false
	}
	if subDayOffsetPattern.MatchString(strings.ToLower(result.Text)) {
		return DateMatch{}, false
	}
	return DateMatch{Date: result.Time, Text: result.Text}, true
}

var weekdays = map[string]time.Weekday{
	"domingo": time.Sunday,
	"segunda": time.Monday,
	"terça":   time.Tuesday,
	"terca":   time.Tuesday,
	"quarta":  time.Wednesday,
	"quinta":  time.Thursday,
	"sexta":   time.Friday,
	"sábado":  time.Saturday,
	"sabado":  time.Saturday,
}

var (
	nextWeekdayPattern = regexp.MustCompile(`pr[óo]xim[ao]\s+(domingo|segunda|ter[çc]a|quarta|quinta|sexta|s[áa]bado)`)
	weekdayNamePattern = regexp.MustCompile(`domingo|segunda|ter[çc]a|quarta|quinta|sexta|s[áa]bado`)
	dayOfMonthPattern  = regexp.MustCompile(`\bdia\s+(\d{1,2})\b`)
	nextMonthPattern   = regexp.MustCompile(`pr[óo]ximo\s+m[êe]s|m[êe]s\s+que\s+vem`)
	slashDatePattern   = regexp.MustCompile(`(?:^|[^\d/])(\d{1,2})/(\d{1,2})(?:/(\d{4}|\d{2}))?(?:[^\d/]|$)`)

	// dateExpressionPatterns cover numbers that belong to a date rather than an amount.
	dateExpressionPatterns = []*regexp.Regexp{
		dayOfMonthPattern,
		regexp.MustCompile(`\b\d{1,2}/\d{1,2}(?:/\d{2,4})?\b`),
		regexp.MustCompile(`\b\d{1,2}-\d{1,2}-\d{2,4}\b`),
		regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
		regexp.MustCompile(`\bem\s+\d+\s+(?:dias?|semanas?|meses|m[êe]s)\b`),
		regexp.MustCompile(`\b\d{1,2}\s+de\s+(?:janeiro|fevereiro|mar[çc]o|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro)\b`),
	}
)

type dateStage func(lower string, ref time.Time) (time.Time, bool)

// DateResolver turns relative Portuguese date expressions into calendar dates.
// Stages run in order and the first one that resolves a date wins.
type DateResolver struct {
	extractor DateExtractor
	stages    []dateStage
}

// NewDateResolver creates a resolver. A nil extractor skips the general-purpose pass.
func NewDateResolver(extractor DateExtractor) *DateResolver {
	r := &DateResolver{extractor: extractor}
	r.stages = []dateStage{
		r.resolveGeneral,
		resolveSlashDate,
		resolveKeyword,
		resolveNextWeekday,
		resolveDayOfMonth,
	}
	return r
}

// Resolve returns the date referenced by text relative to ref, if any.
func (r *DateResolver) Resolve(text string, ref time.Time) (time.Time, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return time.Time{}, false
	}
	day := dateOnly(ref)
	for _, stage := range r.stages {
		if date, ok := stage(lower, day); ok {
			return dateOnly(date), true
		}
	}
	return time.Time{}, false
}

// ResolveISO is Resolve formatted with DateLayout; it returns "" when nothing matched.
func (r *DateResolver) ResolveISO(text string, ref time.Time) string {
	date, ok := r.Resolve(text, ref)
	if !ok {
		return ""
	}
	return date.Format(DateLayout)
}

func (r *DateResolver) resolveGeneral(lower string, ref time.Time) (time.Time, bool) {
	if r.extractor == nil {
		return time.Time{}, false
	}
	match, ok := r.extractor.Extract(lower, ref)
	if !ok {
		return time.Time{}, false
	}
	matched := strings.ToLower(match.Text)
	if isTimeOnly(matched) {
		return time.Time{}, false
	}
	date := dateOnly(match.Date)
	if date.Before(ref) {
		return time.Time{}, false
	}
	// Weekday expressions always point forward.
	if weekdayNamePattern.MatchString(matched) && !date.After(ref) {
		return time.Time{}, false
	}
	return match.Date, true
}

// resolveSlashDate reads DD/MM[/YYYY]. Without a year the next occurrence
// from the reference day is used.
func resolveSlashDate(lower string, ref time.Time) (time.Time, bool) {
	m := slashDatePattern.FindStringSubmatch(lower)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return time.Time{}, false
	}

	if m[3] != "" {
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		return calendarDate(year, time.Month(month), day, ref.Location())
	}

	date, ok := calendarDate(ref.Year(), time.Month(month), day, ref.Location())
	if !ok {
		return time.Time{}, false
	}
	if date.Before(ref) {
		return calendarDate(ref.Year()+1, time.Month(month), day, ref.Location())
	}
	return date, true
}

var timeFillerPattern = regexp.MustCompile(`horas?|min|[àa]s`)

// isTimeOnly reports whether a matched expression carries a time of day but no date.
func isTimeOnly(matched string) bool {
	rest := timePattern.ReplaceAllString(matched, "")
	rest = timeFillerPattern.ReplaceAllString(rest, "")
	return strings.TrimFunc(rest, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) == ""
}

func resolveKeyword(lower string, ref time.Time) (time.Time, bool) {
	switch {
	case strings.Contains(lower, "depois de amanhã"), strings.Contains(lower, "depois de amanha"):
		return ref.AddDate(0, 0, 2), true
	case strings.Contains(lower, "hoje"):
		return ref, true
	case strings.Contains(lower, "amanhã"), strings.Contains(lower, "amanha"):
		return ref.AddDate(0, 0, 1), true
	}
	return time.Time{}, false
}

func resolveNextWeekday(lower string, ref time.Time) (time.Time, bool) {
	m := nextWeekdayPattern.FindStringSubmatch(lower)
	if m == nil {
		return time.Time{}, false
	}
	target, ok := weekdays[m[1]]
	if !ok {
		return time.Time{}, false
	}
	return NextWeekday(ref, target), true
}

func resolveDayOfMonth(lower string, ref time.Time) (time.Time, bool) {
	m := dayOfMonthPattern.FindStringSubmatch(lower)
	if m == nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	date := dayInMonth(ref.Year(), ref.Month(), day, ref.Location())
	if date.Before(ref) || nextMonthPattern.MatchString(lower) {
		next := time.Date(ref.Year(), ref.Month()+1, 1, 0, 0, 0, 0, ref.Location())
		date = dayInMonth(next.Year(), next.Month(), day, ref.Location())
	}
	return date, true
}

// NextWeekday returns the first date strictly after ref falling on target.
func NextWeekday(ref time.Time, target time.Weekday) time.Time {
	diff := (int(target) - int(ref.Weekday()) + 7) % 7
	if diff == 0 {
		diff = 7
	}
	return dateOnly(ref).AddDate(0, 0, diff)
}

// dayInMonth clamps day to the length of the month.
func dayInMonth(year int, month time.Month, day int, loc *time.Location) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
