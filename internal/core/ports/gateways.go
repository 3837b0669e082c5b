package ports

import (
	"context"
	"fmt"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/order"
)

// GatewayError reports a failed call to an external system. Gateway is the
// adapter name, Code the remote failure code when one was returned.
type GatewayError struct {
	Gateway string
	Code    string
	Cause   error
}

// NewGatewayError creates a GatewayError for the named gateway.
func NewGatewayError(gateway string, code string, cause error) *GatewayError {
	return &GatewayError{
		Gateway: gateway,
		Code:    code,
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *GatewayError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s gateway error (%s): %v", e.Gateway, e.Code, e.Cause)
	}
	return fmt.Sprintf("%s gateway error: %v", e.Gateway, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// PaymentGateway captures and refunds the pre-authorized charges attached to
// orders. Both calls are remote and must respect ctx cancellation.
type PaymentGateway interface {
	// Capture settles the pre-authorized charge. The returned record carries
	// the processor's captured flag and the charged card summary.
	Capture(ctx context.Context, chargeID string) (*order.PaymentCapture, error)

	// Refund returns the captured charge to the customer.
	Refund(ctx context.Context, chargeID string) (*order.PaymentRefund, error)
}

// CouponLedger tracks single-use coupon redemption per (code, vehicle, user)
// tuple.
type CouponLedger interface {
	// MarkUsed records a redemption of the code for the given vehicle and user.
	MarkUsed(ctx context.Context, code string, licensePlate string, userID kernel.UUID) error

	// Release makes the code redeemable again for the given vehicle and user.
	// Releasing an unredeemed tuple is a no-op.
	Release(ctx context.Context, code string, licensePlate string, userID kernel.UUID) error
}

// ReferralLedger tracks each user's referral gallon balance.
type ReferralLedger interface {
	// Credit adds gallons to the user's balance.
	Credit(ctx context.Context, userID kernel.UUID, gallons int) error

	// Debit removes gallons from the user's balance.
	Debit(ctx context.Context, userID kernel.UUID, gallons int) error
}

// CourierCapacity is the single owner of courier load accounting. Every
// assignment acquires a slot and every completion or cancellation releases it.
type CourierCapacity interface {
	// Acquire binds the order to the courier's active load.
	Acquire(ctx context.Context, courierID kernel.UUID, orderID kernel.UUID) error

	// Release removes the order from the courier's active load.
	// Releasing an order that holds no slot is a no-op.
	Release(ctx context.Context, courierID kernel.UUID, orderID kernel.UUID) error
}

// Notifier delivers messages to users out of band.
type Notifier interface {
	// Push sends a push notification to the user's registered devices.
	Push(ctx context.Context, userID kernel.UUID, message string) error

	// SMS sends a text message to the given phone number.
	SMS(ctx context.Context, phone string, message string) error
}

// EventTracker emits analytics events attributed to a user.
type EventTracker interface {
	// Track records the named event with the given properties.
	Track(ctx context.Context, userID kernel.UUID, event string, properties map[string]any) error
}
