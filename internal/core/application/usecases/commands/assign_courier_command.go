package commands

import (
	"errors"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierOptions select the optional behavior of an assignment.
type AssignCourierOptions struct {
	// NoReassign skips the assignment silently when the order has already
	// left Unassigned status. Without it an already assigned order is rebound
	// to the new courier.
	NoReassign bool
}

// AssignCourierCommand binds a courier to an order.
// Assignment acquires a capacity slot for the courier and notifies them with
// a delivery summary. By default an already assigned order is rebound to the
// new courier; NoReassign restricts the command to unassigned orders.
//
// Example:
//
//	cmd, err := NewAssignCourierCommand(orderID, courierID, AssignCourierOptions{NoReassign: true})
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type AssignCourierCommand struct {
	orderID   kernel.UUID
	courierID kernel.UUID
	options   AssignCourierOptions

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to assign the courier to the order.
// Both identifiers must be valid UUIDs.
func NewAssignCourierCommand(
	orderID kernel.UUID,
	courierID kernel.UUID,
	options AssignCourierOptions,
) (AssignCourierCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		courierID.Validate(),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return AssignCourierCommand{
		orderID:   orderID,
		courierID: courierID,
		options:   options,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to assign.
func (c *AssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier receiving the order.
func (c *AssignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Options returns the assignment options.
func (c *AssignCourierCommand) Options() AssignCourierOptions {
	return c.options
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignCourierCommandIsNotConstructed if validation fails.
func (c *AssignCourierCommand) Validate() error {
	return c.guard.Validate(
		ErrAssignCourierCommandIsNotConstructed,
	)
}
