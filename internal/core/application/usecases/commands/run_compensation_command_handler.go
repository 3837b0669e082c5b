package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"fueldrop/internal/core/domain/model/compensation"
	"fueldrop/internal/core/domain/model/order"
	"fueldrop/internal/core/domain/services"
	"fueldrop/internal/core/ports"
)

// compensationBatchSize bounds how many orders one drain pass works on.
const compensationBatchSize = 10

// RunCompensationCommandHandler drains the compensation queue.
// Each pass picks the lowest pending step per order and executes it. A step
// that fails keeps its pending state and accumulates an attempt; the next
// pass retries it, and later steps of the same order wait behind it.
//
// Every step execution is idempotent against the order's current fields, so
// re-running a step whose external call succeeded but whose bookkeeping write
// was lost causes no double effect.
type RunCompensationCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
	coupons    ports.CouponLedger
	referrals  ports.ReferralLedger
	capacity   ports.CourierCapacity
	notifier   ports.Notifier
	tracker    ports.EventTracker
}

// NewRunCompensationCommandHandler creates a handler for queue drain passes.
func NewRunCompensationCommandHandler(
	uowFactory UoWFactory,
	gateway ports.PaymentGateway,
	coupons ports.CouponLedger,
	referrals ports.ReferralLedger,
	capacity ports.CourierCapacity,
	notifier ports.Notifier,
	tracker ports.EventTracker,
) RunCompensationCommandHandler {
	return RunCompensationCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		coupons:    coupons,
		referrals:  referrals,
		capacity:   capacity,
		notifier:   notifier,
		tracker:    tracker,
	}
}

// Handle runs one drain pass.
// Individual step failures are recorded on the step and do not abort the
// pass; only infrastructure failures (transaction, reads) are returned.
func (h RunCompensationCommandHandler) Handle(ctx context.Context, command RunCompensationCommand) error {
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

	compensationRepo := uow.CompensationRepository()
	ordersRepo := uow.OrderRepository()

	steps, err := compensationRepo.GetNextPending(ctx, compensationBatchSize)
	if err != nil {
		return err
	}

	for _, step := range steps {
		o, getErr := ordersRepo.Get(ctx, step.OrderID())
		if getErr != nil {
			return getErr
		}

		step.RecordAttempt()
		if execErr := h.execute(ctx, ordersRepo, step, o); execErr == nil {
			step.MarkDone()
		}

		if err = compensationRepo.Update(ctx, step); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// execute performs one step's reversal action against the live order state.
func (h RunCompensationCommandHandler) execute(
	ctx context.Context,
	ordersRepo ports.OrderRepository,
	step *compensation.Step,
	o *order.Order,
) error {
	switch step.Kind() {
	case compensation.KindCreditReferralGallons:
		return h.creditReferralGallons(ctx, ordersRepo, o)
	case compensation.KindReleaseCoupon:
		return h.releaseCoupon(ctx, ordersRepo, o)
	case compensation.KindFreeCourier:
		return h.freeCourier(ctx, o)
	case compensation.KindNotifyCustomer:
		return h.notifier.Push(ctx, o.UserID(),
			"Your order has been cancelled. Contact support if you have any questions.")
	case compensation.KindRefundPayment:
		return h.refundPayment(ctx, ordersRepo, o)
	case compensation.KindTrackEvent:
		return h.trackCancellation(ctx, step, o)
	default:
		return fmt.Errorf("unknown compensation kind %d", step.Kind())
	}
}

func (h RunCompensationCommandHandler) creditReferralGallons(
	ctx context.Context,
	ordersRepo ports.OrderRepository,
	o *order.Order,
) error {
	gallons := o.ReferralGallonsUsed()
	if gallons == 0 {
		return nil
	}

	if err := h.referrals.Credit(ctx, o.UserID(), gallons); err != nil {
		return err
	}

	// The field is zeroed only after the ledger accepted the credit; a crash
	// in between re-credits on retry, which the ledger deduplicates.
	o.ClearReferralGallons()
	return ordersRepo.Update(ctx, o)
}

func (h RunCompensationCommandHandler) releaseCoupon(
	ctx context.Context,
	ordersRepo ports.OrderRepository,
	o *order.Order,
) error {
	code := o.CouponCode()
	if code == "" {
		return nil
	}

	if err := h.coupons.Release(ctx, code, o.LicensePlate(), o.UserID()); err != nil {
		return err
	}

	o.ClearCouponCode()
	return ordersRepo.Update(ctx, o)
}

func (h RunCompensationCommandHandler) freeCourier(ctx context.Context, o *order.Order) error {
	courierID := o.Courier()
	if courierID == nil {
		return nil
	}

	if err := h.capacity.Release(ctx, *courierID, o.ID()); err != nil {
		return err
	}

	// The capacity slot is the durable part; the courier's notice is best effort.
	_ = h.notifier.Push(ctx, *courierID, "Your delivery has been cancelled.")
	return nil
}

func (h RunCompensationCommandHandler) refundPayment(
	ctx context.Context,
	ordersRepo ports.OrderRepository,
	o *order.Order,
) error {
	if o.ChargeID() == "" || o.RefundID() != "" {
		return nil
	}

	refund, err := h.gateway.Refund(ctx, o.ChargeID())
	if err != nil {
		return err
	}

	o.RecordRefund(*refund)
	return ordersRepo.Update(ctx, o)
}

func (h RunCompensationCommandHandler) trackCancellation(
	ctx context.Context,
	step *compensation.Step,
	o *order.Order,
) error {
	var meta services.TrackMeta
	if step.Meta() != "" {
		if err := json.Unmarshal([]byte(step.Meta()), &meta); err != nil {
			return err
		}
	}

	properties := orderEventProperties(o)
	properties["from_customer"] = meta.FromCustomer
	// The step was enqueued in the cancellation transaction, so its creation
	// time is the cancellation time even when the drain pass runs much later.
	properties["cancelled_at"] = step.CreatedAt().Unix()
	return h.tracker.Track(ctx, o.UserID(), "Cancel Order", properties)
}
