package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/olebedev/when/rules"
)

var (
	weekdayRulePattern = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:(n[ao]|nest[ae]|est[ae]|ness[ae]|ess[ae]|pr[óo]xim[ao]|at[ée])\s+)?` +
		`(domingo|s[áa]bado|segunda|ter[çc]a|quarta|quinta|sexta)(-feira)?`)

	// weekdayTailPattern is the context that makes an ordinal-looking name a weekday.
	weekdayTailPattern = regexp.MustCompile(`(?i)^(?:\s*$|\s*[,.;:!?]|\s+(?:que\s+vem|[àa]s?\s*\d|de\s+manh[ãa]|[àa]\s+(?:tarde|noite)|\d))`)

	monthDatePattern = regexp.MustCompile(`(?i)(?:^|[^\p{L}\d])(\d{1,2}|1º|primeiro)\s+de\s+` +
		`(janeiro|fevereiro|mar[çc]o|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro)` +
		`(?:\s+de\s+(\d{4}))?(?:[^\p{L}\d]|$)`)
)

// Names that are also ordinals ("segunda chamada", "quinta vez").
var ordinalWeekdays = map[string]bool{
	"segunda": true,
	"quarta":  true,
	"quinta":  true,
	"sexta":   true,
}

// Prefixes that pin a name to a weekday on their own.
var anchoringPrefixes = []string{"nest", "est", "ness", "ess", "próxim", "proxim", "até", "ate"}

var months = map[string]time.Month{
	"janeiro":   time.January,
	"fevereiro": time.February,
	"março":     time.March,
	"marco":     time.March,
	"abril":     time.April,
	"maio":      time.May,
	"junho":     time.June,
	"julho":     time.July,
	"agosto":    time.August,
	"setembro":  time.September,
	"outubro":   time.October,
	"novembro":  time.November,
	"dezembro":  time.December,
}

// weekdayRule matches full weekday names and resolves them to the next
// occurrence strictly after the reference day. Abbreviations ("ter", "sex")
// are ordinary words in Portuguese and never match.
type weekdayRule struct{}

func (weekdayRule) Find(text string) *rules.Match {
	for _, loc := range weekdayRulePattern.FindAllStringSubmatchIndex(text, -1) {
		name := strings.ToLower(text[loc[4]:loc[5]])
		right := loc[5]
		hasFeira := loc[6] >= 0
		if hasFeira {
			right = loc[7]
		}
		rest := text[right:]
		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsLetter(r) {
			continue
		}

		prefix := ""
		left := loc[4]
		if loc[2] >= 0 {
			prefix = strings.ToLower(text[loc[2]:loc[3]])
			left = loc[2]
		}
		if ordinalWeekdays[name] && !hasFeira && !anchored(prefix) && !weekdayTailPattern.MatchString(rest) {
			continue
		}

		return &rules.Match{
			Left:     left,
			Right:    right,
			Text:     text[left:right],
			Captures: []string{name},
			Applier:  applyWeekday,
		}
	}
	return nil
}

func anchored(prefix string) bool {
	for _, p := range anchoringPrefixes {
		if strings.HasPrefix(prefix, p) {
			return true
		}
	}
	return false
}

func applyWeekday(m *rules.Match, c *rules.Context, _ *rules.Options, ref time.Time) (bool, error) {
	day, ok := weekdays[m.Captures[0]]
	if !ok {
		return false, nil
	}
	c.Duration = NextWeekday(ref, day).Sub(ref)
	return true, nil
}

// monthDateRule matches "20 de março [de 2027]". The day is required so a
// bare month name is never read as a date.
func monthDateRule() rules.Rule {
	return &rules.F{
		RegExp: monthDatePattern,
		Applier: func(m *rules.Match, c *rules.Context, _ *rules.Options, ref time.Time) (bool, error) {
			day := 1
			if n, err := strconv.Atoi(m.Captures[0]); err == nil {
				day = n
			}
			month, ok := months[strings.ToLower(m.Captures[1])]
			if !ok {
				return false, nil
			}

			year := ref.Year()
			explicitYear := m.Captures[2] != ""
			if explicitYear {
				year, _ = strconv.Atoi(m.Captures[2])
			}
			target, ok := calendarDate(year, month, day, ref.Location())
			if !ok {
				return false, nil
			}
			if !explicitYear && target.Before(dateOnly(ref)) {
				if target, ok = calendarDate(year+1, month, day, ref.Location()); !ok {
					return false, nil
				}
			}
			c.Duration = target.Sub(ref)
			return true, nil
		},
	}
}

// calendarDate builds a date, rejecting days the month does not have.
func calendarDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	date := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if date.Day() != day || date.Month() != month {
		return time.Time{}, false
	}
	return date, true
}
