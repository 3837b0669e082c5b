package commands

import (
	"context"
	"fmt"
	"time"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/order"
	"fueldrop/internal/core/ports"
)

// AssignCourierCommandHandler binds couriers to orders.
// An order already bound to another courier is rebound by default, moving the
// capacity slot from the previous courier to the new one. With the NoReassign
// option such orders are skipped silently instead, so concurrent assignment
// attempts converge on the first winner.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory, userRepo, capacity, notifier)
//	cmd, _ := NewAssignCourierCommand(orderID, courierID, AssignCourierOptions{})
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Assignment failed: %v", err)
//	}
type AssignCourierCommandHandler struct {
	uowFactory OrderUoWFactory
	users      ports.UserRepository
	capacity   ports.CourierCapacity
	notifier   ports.Notifier
}

// NewAssignCourierCommandHandler creates a handler for courier assignment operations.
func NewAssignCourierCommandHandler(
	uowFactory OrderUoWFactory,
	users ports.UserRepository,
	capacity ports.CourierCapacity,
	notifier ports.Notifier,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		capacity:   capacity,
		notifier:   notifier,
	}
}

// Handle processes the courier assignment command.
// Transitions the order to Assigned, persists the courier binding, acquires a
// capacity slot and notifies the courier with a push plus a summary SMS. The
// summary warns about the customer's unpaid balance when one exists.
// With the NoReassign option, an order that already left Unassigned status is
// a no-op; otherwise a previous courier's slot is released before the new
// one is acquired.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) error {
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

	if command.Options().NoReassign && o.Status() != order.Unassigned {
		return nil
	}

	// Copy before Assign overwrites the binding.
	var previous *kernel.UUID
	if courierID := o.Courier(); courierID != nil {
		held := *courierID
		previous = &held
	}

	if err = o.Assign(command.CourierID(), time.Now()); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, o); err != nil {
		return err
	}

	unpaid, err := ordersRepo.UnpaidBalance(ctx, o.UserID())
	if err != nil {
		return err
	}

	if previous != nil && !previous.IsEqual(command.CourierID()) {
		if err = h.capacity.Release(ctx, *previous, o.ID()); err != nil {
			return err
		}
	}

	if err = h.capacity.Acquire(ctx, command.CourierID(), o.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyCourier(ctx, o, unpaid)
	return nil
}

// notifyCourier sends the assignment notice and summary. The assignment is
// already committed, so delivery failures are not propagated.
func (h AssignCourierCommandHandler) notifyCourier(ctx context.Context, o *order.Order, unpaidCents int) {
	courierID := o.Courier()
	if courierID == nil {
		return
	}

	_ = h.notifier.Push(ctx, *courierID, "You have a new delivery assigned.")

	courier, err := h.users.Get(ctx, *courierID)
	if err != nil || courier.Phone() == "" {
		return
	}

	summary := fmt.Sprintf(
		"New order: %d gal %s at %s, %s. Plate %s.",
		o.Gallons(), o.GasType(), o.Address().Street, o.Address().City, o.LicensePlate(),
	)
	if unpaidCents > 0 {
		summary += fmt.Sprintf(" Warning: customer has $%.2f in unpaid completed orders.", float64(unpaidCents)/100)
	}

	_ = h.notifier.SMS(ctx, courier.Phone(), summary)
}
