package commands

import (
	"context"
	"time"

	"fueldrop/internal/core/domain/model/order"
	"fueldrop/internal/core/ports"
)

// ProgressOrderCommandHandler performs the courier-driven status advances.
// Each advance is a status write paired with at most one customer
// notification; there is no other branching.
//
// Example:
//
//	handler := NewProgressOrderCommandHandler(uowFactory, notifier)
//	cmd, _ := NewBeginRouteCommand(orderID)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Progress failed: %v", err)
//	}
type ProgressOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewProgressOrderCommandHandler creates a handler for forward status advances.
func NewProgressOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) ProgressOrderCommandHandler {
	return ProgressOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle advances the order to the command's target status.
// The target must be the successor of the order's current status; anything
// else fails with an invalid-transition error. EnRoute and Servicing push a
// progress notification to the customer, Accepted is silent.
func (h ProgressOrderCommandHandler) Handle(ctx context.Context, command ProgressOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	o, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = o.Progress(command.Target(), time.Now()); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// The advance is committed, notification delivery is best effort.
	switch command.Target() {
	case order.EnRoute:
		_ = h.notifier.Push(ctx, o.UserID(), "Your courier is on the way!")
	case order.Servicing:
		_ = h.notifier.Push(ctx, o.UserID(), "Your courier has started fueling your vehicle.")
	}

	return nil
}
