package services

import (
	"encoding/json"
	"time"

	"fueldrop/internal/core/domain/model/compensation"
	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/order"
)

// PlanOptions select the optional parts of a cancellation's compensation
// sequence.
type PlanOptions struct {
	// NotifyCustomer enqueues a cancellation notice push to the customer.
	NotifyCustomer bool

	// FromDashboard attributes the cancellation to an operator rather than
	// the customer. Recorded on the analytics step.
	FromDashboard bool
}

// TrackMeta is the kind-specific payload of a TrackEvent step.
type TrackMeta struct {
	FromCustomer bool `json:"from_customer"`
}

// CompensationPlanner is a domain service that builds the ordered reversal
// sequence for a cancelled order. The plan touches several independent
// systems (referral ledger, coupon ledger, courier capacity, notifier,
// payment gateway, analytics); each action becomes one durable Step so a
// failure in one system never blocks or rolls back the others.
//
// Business rules:
//   - Referral gallons are credited back before promotional fields are read
//     by any later reporting
//   - Steps appear only for state the order actually holds (no coupon, no
//     coupon-release step)
//   - The analytics event is always last so it observes the final outcome
//
// Example usage:
//
//	planner := services.NewCompensationPlanner()
//	steps, err := planner.Plan(cancelledOrder, services.PlanOptions{NotifyCustomer: true}, time.Now())
//	if err != nil {
//	    // Handle planning failure
//	}
//	// Persist steps in the same transaction as the status change
type CompensationPlanner struct{}

// NewCompensationPlanner creates a new CompensationPlanner instance.
func NewCompensationPlanner() CompensationPlanner {
	return CompensationPlanner{}
}

// Plan builds the compensation steps for the given cancelled order.
//
// The sequence, in execution order:
//  1. Credit referral gallons back (if any were used)
//  2. Release the coupon code (if one is attached)
//  3. Free the courier and notify them (if one is assigned)
//  4. Notify the customer (if requested)
//  5. Refund the charge on file (if one exists)
//  6. Emit the "Cancel Order" analytics event (always)
func (p CompensationPlanner) Plan(
	o *order.Order,
	options PlanOptions,
	now time.Time,
) ([]*compensation.Step, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	var kinds []compensation.Kind
	if o.ReferralGallonsUsed() > 0 {
		kinds = append(kinds, compensation.KindCreditReferralGallons)
	}
	if o.CouponCode() != "" {
		kinds = append(kinds, compensation.KindReleaseCoupon)
	}
	if o.Courier() != nil {
		kinds = append(kinds, compensation.KindFreeCourier)
	}
	if options.NotifyCustomer {
		kinds = append(kinds, compensation.KindNotifyCustomer)
	}
	if o.ChargeID() != "" {
		kinds = append(kinds, compensation.KindRefundPayment)
	}
	kinds = append(kinds, compensation.KindTrackEvent)

	trackMeta, err := json.Marshal(TrackMeta{FromCustomer: !options.FromDashboard})
	if err != nil {
		return nil, err
	}

	steps := make([]*compensation.Step, 0, len(kinds))
	for seq, kind := range kinds {
		meta := ""
		if kind == compensation.KindTrackEvent {
			meta = string(trackMeta)
		}

		step, stepErr := compensation.NewStep(kernel.NewUUID(), o.ID(), seq, kind, meta, now)
		if stepErr != nil {
			return nil, stepErr
		}
		steps = append(steps, step)
	}

	return steps, nil
}
