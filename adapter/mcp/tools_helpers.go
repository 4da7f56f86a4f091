package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/giovannadias1704-collab/medplanner-sub000/pkg/observability"
)

// requestContext tags a tool call with its own request ID.
func requestContext(ctx context.Context) context.Context {
	return observability.NewRequestContext(ctx, observability.CorrelationIDFromContext(ctx))
}

func parseUUID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.UUID{}, errors.New("id is required")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid id: %w", err)
	}
	return id, nil
}
