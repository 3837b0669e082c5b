package commands

import (
	"errors"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/order"
	"fueldrop/internal/pkg/guard"
)

var ErrProgressOrderCommandIsNotConstructed = errors.New(
	"ProgressOrderCommand must be created via NewAcceptOrderCommand, NewBeginRouteCommand or NewBeginServiceCommand constructor",
)

// ProgressOrderCommand advances an order one step along the forward status
// chain. Each constructor fixes the target status for one courier action:
// accepting the assignment, starting the drive, or starting to fuel.
type ProgressOrderCommand struct {
	orderID kernel.UUID
	target  order.Status

	guard guard.ConstructorGuard
}

func newProgressOrderCommand(orderID kernel.UUID, target order.Status) (ProgressOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ProgressOrderCommand{}, err
	}

	return ProgressOrderCommand{
		orderID: orderID,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewAcceptOrderCommand creates a command moving the order to Accepted.
func NewAcceptOrderCommand(orderID kernel.UUID) (ProgressOrderCommand, error) {
	return newProgressOrderCommand(orderID, order.Accepted)
}

// NewBeginRouteCommand creates a command moving the order to EnRoute.
func NewBeginRouteCommand(orderID kernel.UUID) (ProgressOrderCommand, error) {
	return newProgressOrderCommand(orderID, order.EnRoute)
}

// NewBeginServiceCommand creates a command moving the order to Servicing.
func NewBeginServiceCommand(orderID kernel.UUID) (ProgressOrderCommand, error) {
	return newProgressOrderCommand(orderID, order.Servicing)
}

// OrderID returns the order to advance.
func (c *ProgressOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the status the order moves to.
func (c *ProgressOrderCommand) Target() order.Status {
	return c.target
}

// Validate ensures the command was created through a constructor.
// Returns ErrProgressOrderCommandIsNotConstructed if validation fails.
func (c *ProgressOrderCommand) Validate() error {
	return c.guard.Validate(
		ErrProgressOrderCommandIsNotConstructed,
	)
}
