// Package compensation provides the durable work items executed after an
// order is cancelled. Cancellation commits the order's terminal status
// synchronously and enqueues one Step per reversal action; a background
// worker drains the queue, retrying failed steps until they succeed.
//
// Steps for one order execute strictly in sequence order. Each step is
// idempotent: executing it twice has the same effect as executing it once,
// which makes crash-retry safe.
package compensation

import (
	"errors"
	"fmt"
	"time"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/pkg/errs"
	"fueldrop/internal/pkg/guard"
)

// ErrStepIsNotConstructed is returned when a Step was not created through the
// NewStep or RestoreStep factory methods.
var ErrStepIsNotConstructed = errors.New("Step must be created via NewStep or RestoreStep constructor")

// Kind identifies the reversal action a compensation step performs.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindCreditReferralGallons credits used referral gallons back to the
	// customer's ledger and zeroes the field on the order.
	KindCreditReferralGallons

	// KindReleaseCoupon marks the coupon code unused for the (code, vehicle,
	// user) tuple and clears the field on the order.
	KindReleaseCoupon

	// KindFreeCourier releases the courier's capacity binding and pushes the
	// courier a cancellation notice.
	KindFreeCourier

	// KindNotifyCustomer pushes the customer a cancellation notice with the
	// support-contact message.
	KindNotifyCustomer

	// KindRefundPayment refunds the charge on file and records the refund id.
	KindRefundPayment

	// KindTrackEvent emits the "Cancel Order" analytics event.
	KindTrackEvent
)

// getKindStrings returns a map of Kind values to their string representations.
func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:               "Unknown",
		KindCreditReferralGallons: "CreditReferralGallons",
		KindReleaseCoupon:         "ReleaseCoupon",
		KindFreeCourier:           "FreeCourier",
		KindNotifyCustomer:        "NotifyCustomer",
		KindRefundPayment:         "RefundPayment",
		KindTrackEvent:            "TrackEvent",
	}
}

// Validate checks if the Kind value is valid.
func (k Kind) Validate() error {
	if k == KindUnknown {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid",
			fmt.Errorf("%d is not a valid compensation kind", k))
	}
	if _, ok := getKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid",
			fmt.Errorf("%d is not a valid compensation kind", k))
	}
	return nil
}

// String returns the human-readable name of the kind.
// Implements the fmt.Stringer interface.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// Step is a single durable compensation action for a cancelled order.
// Steps are created pending, accumulate attempts while failing, and are
// marked done exactly once on success.
type Step struct {
	id        kernel.UUID
	orderID   kernel.UUID
	seq       int
	kind      Kind
	meta      string
	done      bool
	attempts  int
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewStep creates a pending compensation step for the given order.
// Seq orders the steps of one cancellation; meta carries optional
// kind-specific parameters as a JSON document.
func NewStep(
	id kernel.UUID,
	orderID kernel.UUID,
	seq int,
	kind Kind,
	meta string,
	createdAt time.Time,
) (*Step, error) {
	step := &Step{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		kind.Validate(),
	); err != nil {
		return nil, err
	}
	if seq < 0 {
		return nil, errs.NewValueIsInvalidError("seq must not be negative")
	}

	step.id = id
	step.orderID = orderID
	step.seq = seq
	step.kind = kind
	step.meta = meta
	step.createdAt = createdAt
	return step, nil
}

// RestoreStep reconstructs a Step from persistent storage.
func RestoreStep(
	id kernel.UUID,
	orderID kernel.UUID,
	seq int,
	kind Kind,
	meta string,
	done bool,
	attempts int,
	createdAt time.Time,
) (*Step, error) {
	step, err := NewStep(id, orderID, seq, kind, meta, createdAt)
	if err != nil {
		return nil, err
	}

	step.done = done
	step.attempts = attempts
	return step, nil
}

// Validate ensures the Step was created through a constructor.
func (s *Step) Validate() error {
	if s == nil {
		return ErrStepIsNotConstructed
	}
	return s.guard.Validate(ErrStepIsNotConstructed)
}

// ID returns the step's unique identifier.
func (s *Step) ID() kernel.UUID {
	return s.id
}

// OrderID returns the cancelled order this step compensates.
func (s *Step) OrderID() kernel.UUID {
	return s.orderID
}

// Seq returns the step's position within its order's compensation sequence.
func (s *Step) Seq() int {
	return s.seq
}

// Kind returns the reversal action the step performs.
func (s *Step) Kind() Kind {
	return s.kind
}

// Meta returns the kind-specific JSON parameters, if any.
func (s *Step) Meta() string {
	return s.meta
}

// Done reports whether the step has completed successfully.
func (s *Step) Done() bool {
	return s.done
}

// Attempts returns how many executions have been recorded.
func (s *Step) Attempts() int {
	return s.attempts
}

// CreatedAt returns when the step was enqueued.
func (s *Step) CreatedAt() time.Time {
	return s.createdAt
}

// RecordAttempt increments the attempt counter before an execution.
func (s *Step) RecordAttempt() {
	s.attempts++
}

// MarkDone marks the step completed. Completed steps are never re-executed.
func (s *Step) MarkDone() {
	s.done = true
}
