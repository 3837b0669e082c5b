package commands

import (
	"context"
	"errors"
	"time"

	"fueldrop/internal/core/domain/model/user"
	"fueldrop/internal/core/domain/services"
	"fueldrop/internal/core/ports"
)

// ErrTooLateToCancel is returned when the order's status is no longer in the
// cancellable set. The check runs against the pre-cancellation status.
var ErrTooLateToCancel = errors.New("too late to cancel this order")

// CancelOrderResult is returned to the caller on successful cancellation.
// User is the customer profile for display, nil when suppressed.
type CancelOrderResult struct {
	User *user.User
}

// CancelOrderCommandHandler cancels orders.
// The terminal status and the planned compensation steps are committed in a
// single transaction, so a crash after Handle returns can never lose the
// reversal work. Executing the steps is the compensation worker's job.
//
// Example:
//
//	handler := NewCancelOrderCommandHandler(uowFactory, users, planner)
//	cmd, _ := NewCancelOrderCommand(userID, orderID, CancelOrderOptions{NotifyCustomer: true})
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrTooLateToCancel):
//	    // Order already past the cancellable statuses
//	case err != nil:
//	    log.Printf("Cancellation failed: %v", err)
//	}
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	users      ports.UserRepository
	planner    services.CompensationPlanner
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	users ports.UserRepository,
	planner services.CompensationPlanner,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		planner:    planner,
	}
}

// Handle processes the cancellation command.
// Fails with errs.ObjectNotFoundError for unknown orders and
// ErrTooLateToCancel when the order already left the cancellable set.
func (h CancelOrderCommandHandler) Handle(
	ctx context.Context,
	command CancelOrderCommand,
) (CancelOrderResult, error) {
	if err := command.Validate(); err != nil {
		return CancelOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CancelOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	o, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return CancelOrderResult{}, err
	}

	if !o.Status().In(command.CancellableStatuses()) {
		return CancelOrderResult{}, ErrTooLateToCancel
	}

	now := time.Now()
	if err = o.Cancel(now); err != nil {
		return CancelOrderResult{}, err
	}

	steps, err := h.planner.Plan(o, services.PlanOptions{
		NotifyCustomer: command.Options().NotifyCustomer,
		FromDashboard:  command.Options().FromDashboard,
	}, now)
	if err != nil {
		return CancelOrderResult{}, err
	}

	if err = ordersRepo.Update(ctx, o); err != nil {
		return CancelOrderResult{}, err
	}

	if err = uow.CompensationRepository().Add(ctx, steps); err != nil {
		return CancelOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CancelOrderResult{}, err
	}

	result := CancelOrderResult{}
	if !command.Options().SuppressUserDetails {
		// Profile lookup is for display only, the cancellation stands without it.
		if customer, userErr := h.users.Get(ctx, command.UserID()); userErr == nil {
			result.User = customer
		}
	}

	return result, nil
}
