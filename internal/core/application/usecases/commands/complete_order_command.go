package commands

import (
	"errors"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand finishes a delivery. Completion transitions the order
// to its terminal Completed status, settles the pre-authorized charge and
// runs the post-payment fan-out (referrer bonus, analytics, customer push).
//
// Example:
//
//	cmd, err := NewCompleteOrderCommand(orderID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CompleteOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command to complete the given order.
func NewCompleteOrderCommand(orderID kernel.UUID) (CompleteOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CompleteOrderCommand{}, err
	}

	return CompleteOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to complete.
func (c *CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteOrderCommandIsNotConstructed if validation fails.
func (c *CompleteOrderCommand) Validate() error {
	return c.guard.Validate(
		ErrCompleteOrderCommandIsNotConstructed,
	)
}
