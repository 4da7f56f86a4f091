package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
)

var validate = validator.New()

const promptTemplate = `Você é o assistente de captura rápida de um planner para estudantes de medicina.
Hoje é %s (%s).

Interprete a frase do usuário e devolva APENAS um objeto JSON, sem texto adicional, com os campos:
{
  "category": "event" | "exam" | "bill" | "workout" | "meal" | "weight" | "task" | "note",
  "title": "título curto",
  "date": "YYYY-MM-DD" ou null,
  "startTime": "HH:MM" ou null,
  "endTime": "HH:MM" ou null,
  "amount": número ou null,
  "details": "detalhes adicionais" ou null,
  "warnings": ["ambiguidades encontradas"],
  "questionsToUser": ["perguntas para confirmar dados faltantes"],
  "confidence": número entre 0 e 1,
  "requiresConfirmation": true ou false
}

Regras:
- Datas relativas ("amanhã", "próxima segunda", "dia 20") são calculadas a partir de hoje.
- Provas, avaliações e testes são "exam"; contas e boletos são "bill"; treinos são "workout".
- Valores em reais vão em "amount" usando ponto como separador decimal.

Frase: %q`

var weekdayNames = [...]string{"domingo", "segunda-feira", "terça-feira", "quarta-feira", "quinta-feira", "sexta-feira", "sábado"}

// BuildPrompt builds the completion prompt for text relative to ref.
func BuildPrompt(text string, ref time.Time) string {
	return fmt.Sprintf(promptTemplate, ref.Format(DateLayout), weekdayNames[ref.Weekday()], strings.TrimSpace(text))
}

// remotePayload is the JSON object the model is asked to return.
type remotePayload struct {
	Category             string   `json:"category" validate:"required,oneof=event exam bill workout meal weight task note"`
	Title                string   `json:"title" validate:"required"`
	Date                 *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime            *string  `json:"startTime" validate:"omitempty,datetime=15:04"`
	EndTime              *string  `json:"endTime" validate:"omitempty,datetime=15:04"`
	Amount               *float64 `json:"amount" validate:"omitempty,gte=0"`
	Details              *string  `json:"details"`
	Warnings             []string `json:"warnings"`
	QuestionsToUser      []string `json:"questionsToUser"`
	Confidence           *float64 `json:"confidence" validate:"required,gte=0,lte=1"`
	RequiresConfirmation *bool    `json:"requiresConfirmation"`
}

var errNoJSONObject = errors.New("no JSON object in completion")

// ExtractJSONObject returns the text between the first '{' and the last '}'.
func ExtractJSONObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", errNoJSONObject
	}
	return raw[start : end+1], nil
}

// DecodeRemoteOutcome validates a model completion and converts it into an outcome
// with remote provenance. Any malformed or out-of-schema payload is rejected.
func DecodeRemoteOutcome(raw string, threshold float64) (domain.ParseOutcome, error) {
	object, err := ExtractJSONObject(raw)
	if err != nil {
		return domain.ParseOutcome{}, err
	}

	var payload remotePayload
	if err := json.Unmarshal([]byte(object), &payload); err != nil {
		return domain.ParseOutcome{}, fmt.Errorf("decode completion: %w", err)
	}
	if err := validate.Struct(payload); err != nil {
		return domain.ParseOutcome{}, fmt.Errorf("validate completion: %w", err)
	}

	title := domain.TitleFromText(payload.Title)
	if title == "" {
		return domain.ParseOutcome{}, errors.New("validate completion: blank title")
	}

	intent := domain.CapturedIntent{
		Category:  domain.Category(payload.Category),
		Title:     title,
		Date:      deref(payload.Date),
		StartTime: deref(payload.StartTime),
		EndTime:   deref(payload.EndTime),
		Amount:    payload.Amount,
		Details:   strings.TrimSpace(deref(payload.Details)),
	}
	return domain.NewParseOutcome(intent, *payload.Confidence, threshold, domain.ProvenanceRemote, payload.Warnings, payload.QuestionsToUser), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
