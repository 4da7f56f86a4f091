package domain

// Provenance records which stage produced a parse outcome.
type Provenance string

const (
	// ProvenanceLocal means the local heuristics were confident enough.
	ProvenanceLocal Provenance = "local"
	// ProvenanceRemote means the AI model produced the result.
	ProvenanceRemote Provenance = "remote"
	// ProvenanceLocalFallback means escalation failed and the local result was kept.
	ProvenanceLocalFallback Provenance = "local-fallback"
)

// DefaultConfirmationThreshold is the confidence below which a result needs user confirmation.
const DefaultConfirmationThreshold = 0.75

// ParseOutcome wraps a captured intent with its confidence and origin.
// Outcomes are built with NewParseOutcome and never mutated afterwards.
type ParseOutcome struct {
	Intent               CapturedIntent `json:"intent"`
	Confidence           float64        `json:"confidence"`
	RequiresConfirmation bool           `json:"requiresConfirmation"`
	Provenance           Provenance     `json:"provenance"`
	Warnings             []string       `json:"warnings"`
	QuestionsToUser      []string       `json:"questionsToUser"`
}

// NewParseOutcome builds an outcome, clamping confidence to [0, 1] and deriving
// RequiresConfirmation from threshold.
func NewParseOutcome(intent CapturedIntent, confidence, threshold float64, provenance Provenance, warnings, questions []string) ParseOutcome {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return ParseOutcome{
		Intent:               intent,
		Confidence:           confidence,
		RequiresConfirmation: confidence < threshold,
		Provenance:           provenance,
		Warnings:             copyStrings(warnings),
		QuestionsToUser:      copyStrings(questions),
	}
}

// WithProvenance returns a copy of the outcome labelled with p.
func (o ParseOutcome) WithProvenance(p Provenance) ParseOutcome {
	o.Provenance = p
	o.Warnings = copyStrings(o.Warnings)
	o.QuestionsToUser = copyStrings(o.QuestionsToUser)
	return o
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// ParseResult is the envelope handed to callers of the parser.
type ParseResult struct {
	Success bool          `json:"success"`
	Data    *ParseOutcome `json:"data,omitempty"`
	Source  Provenance    `json:"source,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// NewParseResult converts a parser return pair into the caller envelope.
func NewParseResult(outcome *ParseOutcome, err error) ParseResult {
	if err != nil {
		return ParseResult{Success: false, Error: UserMessage(err)}
	}
	return ParseResult{Success: true, Data: outcome, Source: outcome.Provenance}
}
