package application

import "context"

// Command represents a command that modifies system state.
type Command interface {
	CommandName() string
}

// CommandHandler handles a command that returns nothing but an error.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultCommandHandler handles a command that returns a result.
type ResultCommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}
