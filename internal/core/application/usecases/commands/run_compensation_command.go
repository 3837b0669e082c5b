package commands

import (
	"errors"

	"fueldrop/internal/pkg/guard"
)

var ErrRunCompensationCommandIsNotConstructed = errors.New(
	"RunCompensationCommand must be created via NewRunCompensationCommand constructor",
)

// RunCompensationCommand triggers one drain pass over the compensation queue.
// Issued periodically by the background job scheduler.
//
// Example:
//
//	cmd := NewRunCompensationCommand()
//	handler := NewRunCompensationCommandHandler(uowFactory, gateway, coupons, referrals, capacity, notifier, tracker)
//	err := handler.Handle(ctx, cmd)
type RunCompensationCommand struct {
	guard guard.ConstructorGuard
}

// NewRunCompensationCommand creates a new command to trigger a drain pass.
// This is a parameterless command; the handler bounds the batch itself.
func NewRunCompensationCommand() RunCompensationCommand {
	return RunCompensationCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrRunCompensationCommandIsNotConstructed if validation fails.
func (c *RunCompensationCommand) Validate() error {
	return c.guard.Validate(
		ErrRunCompensationCommandIsNotConstructed,
	)
}
