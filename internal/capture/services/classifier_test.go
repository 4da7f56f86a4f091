package services

import (
	"strings"
	"testing"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected domain.Category
	}{
		{"exam", "prova de biologia", domain.CategoryExam},
		{"exam avaliacao", "Avaliação de farmacologia", domain.CategoryExam},
		{"bill", "pagar 150 reais", domain.CategoryBill},
		{"bill boleto", "boleto da faculdade", domain.CategoryBill},
		{"workout", "treino de academia", domain.CategoryWorkout},
		{"weight", "pesei 72kg hoje", domain.CategoryWeight},
		{"meal", "almoço no RU", domain.CategoryMeal},
		{"meal cafe", "café da manhã com a turma", domain.CategoryMeal},
		{"default event", "aniversário da Ana", domain.CategoryEvent},
		{"exam before weight", "prova sobre peso corporal", domain.CategoryExam},
		{"exam before bill", "pagar taxa da prova", domain.CategoryExam},
		{"bill before workout", "pagar academia", domain.CategoryBill},
		{"workout before meal", "treino antes do almoço", domain.CategoryWorkout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectCategory(tt.text))
		})
	}
}

func TestExtractTime(t *testing.T) {
	tests := []struct {
		text     string
		expected string
		ok       bool
	}{
		{"às 14h", "14:00", true},
		{"às 9h", "09:00", true},
		{"14h30", "14:30", true},
		{"reunião 08:15", "08:15", true},
		{"23h59", "23:59", true},
		{"às 25h", "", false},
		{"14:75", "", false},
		{"sem horário", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ExtractTime(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		text     string
		expected float64
		ok       bool
	}{
		{"pagar 150 reais", 150, true},
		{"pagar R$ 49,90 de internet", 49.9, true},
		{"pagar $20", 20, true},
		{"pagar 10.50", 10.5, true},
		{"pagar r$ 1.500,00 de aluguel", 1500, true},
		{"pagar 1.500", 1500, true},
		{"prova amanhã às 14h", 0, false},
		{"pagar conta dia 20", 0, false},
		{"consulta 20/03", 0, false},
		{"revisão em 3 dias", 0, false},
		{"aula 24:00", 0, false},
		{"plantão 25h", 0, false},
		{"aula 24:00 pagar 30 reais", 30, true},
		{"prova de biologia", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ExtractAmount(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.expected, got, 0.001)
		})
	}
}

func TestScoring_Score(t *testing.T) {
	s := DefaultScoring()

	assert.Equal(t, 0.5, s.Score(false, false, false))
	assert.Equal(t, 0.7, s.Score(true, false, false))
	assert.Equal(t, 0.65, s.Score(false, true, false))
	assert.Equal(t, 0.65, s.Score(false, false, true))
	assert.Equal(t, 0.85, s.Score(true, false, true))
	assert.Equal(t, 1.0, s.Score(true, true, true))
}

func TestScoring_Monotonic(t *testing.T) {
	s := DefaultScoring()
	signals := []bool{false, true}

	for _, date := range signals {
		for _, amount := range signals {
			for _, tm := range signals {
				base := s.Score(date, amount, tm)
				assert.GreaterOrEqual(t, s.Score(true, amount, tm), base)
				assert.GreaterOrEqual(t, s.Score(date, true, tm), base)
				assert.GreaterOrEqual(t, s.Score(date, amount, true), base)
				assert.LessOrEqual(t, base, 1.0)
			}
		}
	}
}

func TestScoring_Capped(t *testing.T) {
	s := Scoring{BaseConfidence: 0.9, DateWeight: 0.5, AmountWeight: 0.5, TimeWeight: 0.5}
	assert.Equal(t, 1.0, s.Score(true, true, true))
}

func TestClassifier_Scenarios(t *testing.T) {
	c := NewClassifier(NewDateResolver(nil), DefaultScoring())

	t.Run("exam without signals", func(t *testing.T) {
		out := c.Classify("prova de biologia", refDate)

		assert.Equal(t, domain.CategoryExam, out.Intent.Category)
		assert.Equal(t, "prova de biologia", out.Intent.Title)
		assert.Empty(t, out.Intent.Date)
		assert.Empty(t, out.Intent.StartTime)
		assert.Nil(t, out.Intent.Amount)
		assert.Equal(t, 0.5, out.Confidence)
		assert.True(t, out.RequiresConfirmation)
		assert.Equal(t, domain.ProvenanceLocal, out.Provenance)
	})

	t.Run("bill with amount", func(t *testing.T) {
		out := c.Classify("pagar 150 reais", refDate)

		assert.Equal(t, domain.CategoryBill, out.Intent.Category)
		require.NotNil(t, out.Intent.Amount)
		assert.Equal(t, 150.0, *out.Intent.Amount)
		assert.Equal(t, 0.65, out.Confidence)
		assert.True(t, out.RequiresConfirmation)
	})

	t.Run("exam with date and time", func(t *testing.T) {
		out := c.Classify("tenho prova de anatomia amanhã às 14h", refDate)

		assert.Equal(t, domain.CategoryExam, out.Intent.Category)
		assert.Equal(t, "2026-02-20", out.Intent.Date)
		assert.Equal(t, "14:00", out.Intent.StartTime)
		assert.Nil(t, out.Intent.Amount)
		assert.Equal(t, 0.85, out.Confidence)
		assert.False(t, out.RequiresConfirmation)
	})

	t.Run("workout", func(t *testing.T) {
		out := c.Classify("treino de academia", refDate)

		assert.Equal(t, domain.CategoryWorkout, out.Intent.Category)
		assert.Equal(t, 0.5, out.Confidence)
		assert.True(t, out.RequiresConfirmation)
	})

	t.Run("bill with date and amount", func(t *testing.T) {
		out := c.Classify("pagar boleto de 89,90 dia 25", refDate)

		assert.Equal(t, domain.CategoryBill, out.Intent.Category)
		assert.Equal(t, "2026-02-25", out.Intent.Date)
		require.NotNil(t, out.Intent.Amount)
		assert.InDelta(t, 89.9, *out.Intent.Amount, 0.001)
		assert.Equal(t, 0.85, out.Confidence)
		assert.False(t, out.RequiresConfirmation)
	})
}

func TestClassifier_WithWhenExtractor(t *testing.T) {
	c := NewClassifier(NewDateResolver(NewWhenExtractor()), DefaultScoring())

	t.Run("verb ter is not a weekday", func(t *testing.T) {
		out := c.Classify("vou ter prova de anatomia às 14h", refDate)

		assert.Equal(t, domain.CategoryExam, out.Intent.Category)
		assert.Empty(t, out.Intent.Date)
		assert.Equal(t, "14:00", out.Intent.StartTime)
		assert.Equal(t, 0.65, out.Confidence)
		assert.True(t, out.RequiresConfirmation)
	})

	t.Run("dez is an amount word, not a month", func(t *testing.T) {
		out := c.Classify("pagar dez reais de estacionamento", refDate)

		assert.Equal(t, domain.CategoryBill, out.Intent.Category)
		assert.Empty(t, out.Intent.Date)
	})

	t.Run("day after tomorrow", func(t *testing.T) {
		out := c.Classify("prova de fisiologia depois de amanhã às 8h", refDate)

		assert.Equal(t, "2026-02-21", out.Intent.Date)
		assert.Equal(t, "08:00", out.Intent.StartTime)
		assert.Equal(t, 0.85, out.Confidence)
	})

	t.Run("slash date", func(t *testing.T) {
		out := c.Classify("consulta 20/03", refDate)

		assert.Equal(t, "2026-03-20", out.Intent.Date)
		assert.Nil(t, out.Intent.Amount)
	})
}

func TestClassifier_LocalInvariants(t *testing.T) {
	c := NewClassifier(NewDateResolver(nil), DefaultScoring())
	long := strings.Repeat("plantão ", 30)

	for _, text := range []string{"prova de biologia", "pagar 150 reais", long, "  almoço às 12h  "} {
		out := c.Classify(text, refDate)

		assert.NotEmpty(t, out.Intent.Title)
		assert.LessOrEqual(t, len([]rune(out.Intent.Title)), domain.MaxTitleLength)
		assert.Empty(t, out.Intent.EndTime)
		assert.Empty(t, out.Intent.Details)
		assert.Empty(t, out.Warnings)
		assert.Empty(t, out.QuestionsToUser)
		assert.Equal(t, out.Confidence < domain.DefaultConfirmationThreshold, out.RequiresConfirmation)
	}
}

func TestClassifier_CustomScoring(t *testing.T) {
	scoring := DefaultScoring()
	scoring.ConfirmationThreshold = 0.5
	c := NewClassifier(nil, scoring)

	out := c.Classify("prova de biologia", refDate)
	assert.False(t, out.RequiresConfirmation)
	assert.Equal(t, scoring, c.Scoring())
}
