package commands

import (
	"context"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
)

// ParseCommand asks for a parse without saving anything.
type ParseCommand struct {
	Text string
}

// ParseHandler exposes the parser through the caller envelope.
type ParseHandler struct {
	parser Parser
}

// NewParseHandler builds a handler.
func NewParseHandler(parser Parser) *ParseHandler {
	return &ParseHandler{parser: parser}
}

// Handle never fails; errors are reported inside the envelope.
func (h *ParseHandler) Handle(ctx context.Context, cmd ParseCommand) domain.ParseResult {
	return domain.NewParseResult(h.parser.ParseUserInput(ctx, cmd.Text))
}
