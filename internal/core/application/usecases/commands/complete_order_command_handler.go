package commands

import (
	"context"
	"fmt"
	"time"

	"fueldrop/internal/core/domain/model/order"
	"fueldrop/internal/core/ports"
)

// referralBonusGallons is the credit granted to a referrer when an order
// redeeming their code completes.
const referralBonusGallons = 5

// CompleteOrderCommandHandler finishes deliveries.
//
// The completion sequence:
//  1. Transition the order to Completed, release the courier's capacity slot
//  2. Capture the pre-authorized charge, when the order carries one
//  3. On capture success (or no charge): credit the referrer, emit the
//     "Complete Order" analytics event, push the customer a completion notice
//
// Capture failure is returned to the caller unchanged and skips the whole
// fan-out. The order stays Completed but unpaid; reconciliation of that state
// is an operational concern, not a retry concern.
//
// Example:
//
//	handler := NewCompleteOrderCommandHandler(uowFactory, gateway, capacity, users, referrals, tracker, notifier)
//	cmd, _ := NewCompleteOrderCommand(orderID)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Completion failed: %v", err)
//	}
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
	capacity   ports.CourierCapacity
	users      ports.UserRepository
	referrals  ports.ReferralLedger
	tracker    ports.EventTracker
	notifier   ports.Notifier
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
	capacity ports.CourierCapacity,
	users ports.UserRepository,
	referrals ports.ReferralLedger,
	tracker ports.EventTracker,
	notifier ports.Notifier,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		capacity:   capacity,
		users:      users,
		referrals:  referrals,
		tracker:    tracker,
		notifier:   notifier,
	}
}

// Handle processes the order completion command.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, command CompleteOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	o, err := h.completeOrder(ctx, command)
	if err != nil {
		return err
	}

	if courierID := o.Courier(); courierID != nil {
		// The slot is released even if the later capture fails; the delivery
		// itself is finished either way.
		_ = h.capacity.Release(ctx, *courierID, o.ID())
	}

	if o.RequiresCapture() {
		capture, captureErr := h.gateway.Capture(ctx, o.ChargeID())
		if captureErr != nil {
			return captureErr
		}

		if err = h.recordCapture(ctx, command, *capture); err != nil {
			return err
		}
	}

	h.fanOut(ctx, o)
	return nil
}

// completeOrder commits the status transition on its own, before any gateway
// call. A delivery is finished once the courier says so, whether or not the
// charge settles.
func (h CompleteOrderCommandHandler) completeOrder(
	ctx context.Context,
	command CompleteOrderCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	o, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Complete(time.Now()); err != nil {
		return nil, err
	}

	if err = ordersRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// recordCapture persists the capture outcome in a second transaction. The
// order is re-read so a concurrent field update is not clobbered.
func (h CompleteOrderCommandHandler) recordCapture(
	ctx context.Context,
	command CompleteOrderCommand,
	capture order.PaymentCapture,
) error {
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

	if err = o.RecordCapture(capture); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// fanOut runs the post-payment side effects. Each is independently best
// effort; the completion and capture are already durable.
func (h CompleteOrderCommandHandler) fanOut(ctx context.Context, o *order.Order) {
	h.creditReferrer(ctx, o)

	properties := orderEventProperties(o)
	properties["revenue"] = o.Revenue()
	_ = h.tracker.Track(ctx, o.UserID(), "Complete Order", properties)

	h.notifyCustomer(ctx, o)
}

// creditReferrer grants the referral bonus when the order's coupon code is
// another user's referral code.
func (h CompleteOrderCommandHandler) creditReferrer(ctx context.Context, o *order.Order) {
	if o.CouponCode() == "" {
		return
	}

	referrer, err := h.users.FindByReferralCode(ctx, o.CouponCode())
	if err != nil || referrer.ID().IsEqual(o.UserID()) {
		return
	}

	_ = h.referrals.Credit(ctx, referrer.ID(), referralBonusGallons)
}

func (h CompleteOrderCommandHandler) notifyCustomer(ctx context.Context, o *order.Order) {
	customer, err := h.users.Get(ctx, o.UserID())
	if err != nil {
		return
	}

	message := "Your order is complete. Thanks for fueling with us!"
	if !customer.Managed() {
		message += fmt.Sprintf(
			" Share your code %s with friends to earn free gallons.",
			customer.ReferralCode(),
		)
		if customer.SupportsRichText() {
			message += " ⛽"
		}
	}

	_ = h.notifier.Push(ctx, customer.ID(), message)
}
