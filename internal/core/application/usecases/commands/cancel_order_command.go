package commands

import (
	"errors"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/order"
	"fueldrop/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderOptions select the optional behavior of a cancellation.
type CancelOrderOptions struct {
	// FromDashboard attributes the cancellation to an operator rather than
	// the customer.
	FromDashboard bool

	// NotifyCustomer enqueues a cancellation notice push to the customer.
	NotifyCustomer bool

	// SuppressUserDetails omits the customer profile from the result.
	SuppressUserDetails bool

	// CancellableStatuses overrides the set of statuses a cancellation is
	// accepted from. Nil means the default set of all non-terminal statuses.
	CancellableStatuses []order.Status
}

// CancelOrderCommand cancels an order and enqueues its compensation sequence.
// The status change and the queued steps commit in one transaction; the steps
// themselves run later in the background.
//
// Example:
//
//	cmd, err := NewCancelOrderCommand(userID, orderID, CancelOrderOptions{NotifyCustomer: true})
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type CancelOrderCommand struct {
	userID  kernel.UUID
	orderID kernel.UUID
	options CancelOrderOptions

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel the given user's order.
func NewCancelOrderCommand(
	userID kernel.UUID,
	orderID kernel.UUID,
	options CancelOrderOptions,
) (CancelOrderCommand, error) {
	if err := errors.Join(
		userID.Validate(),
		orderID.Validate(),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	for _, status := range options.CancellableStatuses {
		if err := status.Validate(); err != nil {
			return CancelOrderCommand{}, err
		}
	}

	return CancelOrderCommand{
		userID:  userID,
		orderID: orderID,
		options: options,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// UserID returns the customer requesting the cancellation.
func (c *CancelOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// OrderID returns the order to cancel.
func (c *CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Options returns the cancellation options.
func (c *CancelOrderCommand) Options() CancelOrderOptions {
	return c.options
}

// CancellableStatuses returns the effective set the pre-cancellation status
// is checked against.
func (c *CancelOrderCommand) CancellableStatuses() []order.Status {
	if c.options.CancellableStatuses != nil {
		return c.options.CancellableStatuses
	}
	return order.DefaultCancellableStatuses()
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelOrderCommandIsNotConstructed if validation fails.
func (c *CancelOrderCommand) Validate() error {
	return c.guard.Validate(
		ErrCancelOrderCommandIsNotConstructed,
	)
}
