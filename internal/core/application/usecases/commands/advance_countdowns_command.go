package commands

import (
	"errors"

	"restaurant/internal/pkg/guard"
)

var ErrAdvanceCountdownsCommandIsNotConstructed = errors.New(
	"AdvanceCountdownsCommand must be created via NewAdvanceCountdownsCommand constructor",
)

// AdvanceCountdownsCommand asks for one countdown step of every processing order.
// It is issued by the scheduled countdown job.
type AdvanceCountdownsCommand struct {
	guard guard.ConstructorGuard
}

// NewAdvanceCountdownsCommand creates a countdown sweep request.
func NewAdvanceCountdownsCommand() AdvanceCountdownsCommand {
	return AdvanceCountdownsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c AdvanceCountdownsCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceCountdownsCommandIsNotConstructed)
}
