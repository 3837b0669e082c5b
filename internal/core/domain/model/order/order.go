package order

import (
	"errors"
	"fmt"
	"time"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/pkg/errs"
	"fueldrop/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrGasTypeIsRequired is returned when attempting to create an order without a fuel grade.
	ErrGasTypeIsRequired = errs.NewValueIsRequiredError("gas type")
)

// Address holds the street address of the delivery target. It is carried for
// reporting and analytics; routing is out of scope for the order aggregate.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

// Details carries the commercial and delivery attributes supplied when an
// order is created. All prices are integer minor-currency units (cents).
type Details struct {
	GasType             string
	Gallons             int
	GasPrice            int
	ServiceFee          int
	TotalPrice          int
	LicensePlate        string
	CouponCode          string
	ReferralGallonsUsed int
	ChargeID            string
	Address             Address
	Location            kernel.Location
	WindowStart         time.Time
	WindowEnd           time.Time
}

// Snapshot is the full persisted state of an order, used to restore the
// aggregate from storage via RestoreOrder.
type Snapshot struct {
	ID                   kernel.UUID
	UserID               kernel.UUID
	CourierID            *kernel.UUID
	Status               Status
	StatusLog            []StatusChange
	Details              Details
	Paid                 bool
	ChargeID             string
	ChargedCustomerID    string
	BalanceTransactionID string
	TimePaid             time.Time
	PaymentInfo          string
	RefundID             string
}

// Order represents a fuel delivery order. It is the aggregate root that
// manages the order lifecycle from creation through completion or
// cancellation.
//
// Order follows these invariants:
//   - Must have valid order and customer identifiers and a valid delivery location
//   - Gallons must be positive; prices must not be negative
//   - Status moves only along the forward chain, except cancellation which is
//     reachable from any non-terminal status
//   - The status log gains exactly one record per successful status change and
//     is never rewritten
//   - paid becomes true only by recording a successful capture outcome
//   - couponCode and referralGallonsUsed are cleared only by cancellation
//     compensation
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// userID is the owning customer's ID (immutable after creation)
	userID kernel.UUID

	// courierID is the assigned courier's ID (nil if unassigned)
	courierID *kernel.UUID

	// status represents the current state in the order lifecycle
	status Status

	// statusLog is the append-only history of status changes
	statusLog []StatusChange

	// commercial attributes; prices are cents
	gasType      string
	gallons      int
	gasPrice     int
	serviceFee   int
	totalPrice   int
	licensePlate string

	// promotional attributes
	couponCode          string
	referralGallonsUsed int

	// payment attributes recorded by capture/refund outcomes
	paid                 bool
	chargeID             string
	chargedCustomerID    string
	balanceTransactionID string
	timePaid             time.Time
	paymentInfo          string
	refundID             string

	// delivery target, used for reporting
	address     Address
	location    kernel.Location
	windowStart time.Time
	windowEnd   time.Time

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Unassigned status with validation. This is
// the only way to create a fresh order, ensuring all business invariants are
// maintained. The initial status is recorded in the status log with the
// supplied timestamp.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - userID: Identifier of the owning customer (must be a valid UUID)
//   - details: Commercial and delivery attributes (validated)
//   - now: Timestamp recorded for the initial status log entry
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOrder(id kernel.UUID, userID kernel.UUID, details Details, now time.Time) (*Order, error) {
	order := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setUserID(userID),
		order.setDetails(details),
	); err != nil {
		return nil, err
	}

	order.status = Unassigned
	order.statusLog = []StatusChange{{Status: Unassigned, At: now}}
	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder, which always starts in Unassigned status, this constructor
// restores an order to its previously persisted state including status
// history, courier binding and payment outcome.
//
// The restored order behaves identically to one mutated through normal domain
// operations.
func RestoreOrder(snapshot Snapshot) (*Order, error) {
	order := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(snapshot.ID),
		order.setUserID(snapshot.UserID),
		order.setDetails(snapshot.Details),
		snapshot.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if snapshot.CourierID != nil {
		if err := snapshot.CourierID.Validate(); err != nil {
			return nil, err
		}
		courierID := *snapshot.CourierID
		order.courierID = &courierID
	}

	order.status = snapshot.Status
	order.statusLog = make([]StatusChange, len(snapshot.StatusLog))
	copy(order.statusLog, snapshot.StatusLog)

	order.paid = snapshot.Paid
	order.chargeID = snapshot.ChargeID
	order.chargedCustomerID = snapshot.ChargedCustomerID
	order.balanceTransactionID = snapshot.BalanceTransactionID
	order.timePaid = snapshot.TimePaid
	order.paymentInfo = snapshot.PaymentInfo
	order.refundID = snapshot.RefundID

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// constructor. This prevents bypassing validation by directly instantiating
// the struct.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the owning customer's identifier.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// Courier returns the assigned courier's ID, or nil if no courier is bound.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// StatusLog returns a copy of the append-only status history.
func (o *Order) StatusLog() []StatusChange {
	out := make([]StatusChange, len(o.statusLog))
	copy(out, o.statusLog)
	return out
}

// GasType returns the fuel grade ordered.
func (o *Order) GasType() string {
	return o.gasType
}

// Gallons returns the fuel volume ordered.
func (o *Order) Gallons() int {
	return o.gallons
}

// GasPrice returns the fuel price component in cents.
func (o *Order) GasPrice() int {
	return o.gasPrice
}

// ServiceFee returns the delivery fee component in cents.
func (o *Order) ServiceFee() int {
	return o.serviceFee
}

// TotalPrice returns the full order price in cents.
func (o *Order) TotalPrice() int {
	return o.totalPrice
}

// LicensePlate returns the plate of the vehicle being fueled.
func (o *Order) LicensePlate() string {
	return o.licensePlate
}

// CouponCode returns the promotional code attached to the order, if any.
func (o *Order) CouponCode() string {
	return o.couponCode
}

// ReferralGallonsUsed returns the referral credit applied to the order.
func (o *Order) ReferralGallonsUsed() int {
	return o.referralGallonsUsed
}

// Paid reports whether a successful capture outcome has been recorded.
func (o *Order) Paid() bool {
	return o.paid
}

// ChargeID returns the payment gateway charge identifier on file.
func (o *Order) ChargeID() string {
	return o.chargeID
}

// ChargedCustomerID returns the gateway customer the charge was captured for.
func (o *Order) ChargedCustomerID() string {
	return o.chargedCustomerID
}

// BalanceTransactionID returns the gateway balance transaction of the capture.
func (o *Order) BalanceTransactionID() string {
	return o.balanceTransactionID
}

// TimePaid returns the capture timestamp reported by the gateway.
func (o *Order) TimePaid() time.Time {
	return o.timePaid
}

// PaymentInfo returns the serialized card summary recorded at capture.
func (o *Order) PaymentInfo() string {
	return o.paymentInfo
}

// RefundID returns the gateway refund identifier, if a refund was recorded.
func (o *Order) RefundID() string {
	return o.refundID
}

// Address returns the delivery street address.
func (o *Order) Address() Address {
	return o.address
}

// Location returns the delivery coordinates.
func (o *Order) Location() kernel.Location {
	return o.location
}

// WindowStart returns the start of the requested delivery window.
func (o *Order) WindowStart() time.Time {
	return o.windowStart
}

// WindowEnd returns the end of the requested delivery window.
func (o *Order) WindowEnd() time.Time {
	return o.windowEnd
}

// Revenue returns the order total converted to major currency units
// (dollars), as reported to analytics.
func (o *Order) Revenue() float64 {
	return float64(o.totalPrice) / 100
}

// Market returns the derived market identifier for reporting, built from the
// delivery address.
func (o *Order) Market() string {
	return fmt.Sprintf("%s, %s", o.address.City, o.address.State)
}

// RequiresCapture reports whether completing this order must call the payment
// gateway. Zero-total orders and orders without a charge on file are never
// charged.
func (o *Order) RequiresCapture() bool {
	return o.totalPrice > 0 && o.chargeID != ""
}

// ChangeStatus unconditionally overwrites the order's status and appends one
// record to the status log. Callers are responsible for invoking it only on
// legal edges; the workflow methods below enforce legality.
func (o *Order) ChangeStatus(status Status, at time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}

	o.status = status
	o.statusLog = append(o.statusLog, StatusChange{Status: status, At: at})
	return nil
}

// Assign binds the order to a courier and moves it to Assigned status.
//
// Business rules:
//   - The courier ID must be valid
//   - The order must not be in a terminal status
//   - Reassignment is allowed; callers that must not steal an already
//     assigned order check the status before calling
func (o *Order) Assign(courierID kernel.UUID, at time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", o.status),
		)
	}

	if err := o.ChangeStatus(Assigned, at); err != nil {
		return err
	}

	o.courierID = &courierID
	return nil
}

// Progress advances the order to the given status, which must be the
// successor of the current status in the forward chain. Used for the
// courier-driven Accepted, EnRoute and Servicing transitions.
func (o *Order) Progress(target Status, at time.Time) error {
	if o.status.Next() != target {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s does not follow %s", target, o.status),
		)
	}

	return o.ChangeStatus(target, at)
}

// Complete marks the order as delivered. Completion is allowed from any
// non-terminal status: the completion workflow is the authority on when a
// delivery is finished.
func (o *Order) Complete(at time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", o.status),
		)
	}

	return o.ChangeStatus(Completed, at)
}

// Cancel marks the order as cancelled. The cancellable-set check against the
// pre-cancellation status belongs to the cancellation workflow; this method
// only refuses to cancel terminal orders.
func (o *Order) Cancel(at time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", o.status),
		)
	}

	return o.ChangeStatus(Cancelled, at)
}

// RecordCapture persists a successful capture outcome onto the order.
// The paid flag is sourced from the outcome's Captured indicator, not its
// Paid indicator, which may differ semantically at the gateway.
func (o *Order) RecordCapture(capture PaymentCapture) error {
	cardInfo, err := capture.Card.Serialize()
	if err != nil {
		return err
	}

	o.paid = capture.Captured
	o.chargeID = capture.ChargeID
	o.chargedCustomerID = capture.CustomerID
	o.balanceTransactionID = capture.BalanceTransactionID
	o.timePaid = capture.Created
	o.paymentInfo = cardInfo
	return nil
}

// RecordRefund persists a successful refund outcome onto the order.
func (o *Order) RecordRefund(refund PaymentRefund) {
	o.refundID = refund.ID
}

// ClearReferralGallons zeroes the referral credit field after cancellation
// compensation credited it back to the customer's ledger.
func (o *Order) ClearReferralGallons() {
	o.referralGallonsUsed = 0
}

// ClearCouponCode clears the coupon field after cancellation compensation
// released the code for reuse.
func (o *Order) ClearCouponCode() {
	o.couponCode = ""
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setUserID validates and sets the owning customer's identifier.
// This is a private method used only during construction.
func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

// setDetails validates and sets the commercial and delivery attributes.
// This is a private method used only during construction.
func (o *Order) setDetails(details Details) error {
	if details.GasType == "" {
		return ErrGasTypeIsRequired
	}
	if details.Gallons <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("gallons is invalid",
			fmt.Errorf("%d is not greater than 0", details.Gallons))
	}
	if details.TotalPrice < 0 || details.GasPrice < 0 || details.ServiceFee < 0 {
		return errs.NewValueIsInvalidError("price must not be negative")
	}
	if details.ReferralGallonsUsed < 0 {
		return errs.NewValueIsInvalidError("referral gallons must not be negative")
	}
	if err := details.Location.Validate(); err != nil {
		return err
	}

	o.gasType = details.GasType
	o.gallons = details.Gallons
	o.gasPrice = details.GasPrice
	o.serviceFee = details.ServiceFee
	o.totalPrice = details.TotalPrice
	o.licensePlate = details.LicensePlate
	o.couponCode = details.CouponCode
	o.referralGallonsUsed = details.ReferralGallonsUsed
	o.chargeID = details.ChargeID
	o.address = details.Address
	o.location = details.Location
	o.windowStart = details.WindowStart
	o.windowEnd = details.WindowEnd
	return nil
}
