// Package completion provides the generative-model clients used to escalate
// low-confidence captures, plus the breaker and cache decorators around them.
package completion

import (
	"context"
	"errors"
)

var (
	// ErrCircuitOpen is returned while the breaker rejects calls.
	ErrCircuitOpen = errors.New("completion circuit open")

	// ErrEmptyResponse is returned when the model answers without any text.
	ErrEmptyResponse = errors.New("completion returned no text")
)

// Completer sends a prompt and returns the model's text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
