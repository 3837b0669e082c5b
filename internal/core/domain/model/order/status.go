package order

import (
	"fmt"
	"time"

	"fueldrop/internal/pkg/errs"
)

// Status represents the lifecycle state of a fuel delivery order.
// It implements a state machine with a single forward progression plus a
// cancellation edge reachable from every non-terminal state.
//
// State transitions:
//
//	Unassigned ──> Assigned ──> Accepted ──> EnRoute ──> Servicing ──> Completed
//	     │             │            │            │            │
//	     └─────────────┴────────────┴────────────┴────────────┴──> Cancelled
//
// Completed and Cancelled are terminal: no further transitions are allowed.
// Status is a value object that provides successor lookup and string
// representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Unassigned is the initial status when an order is first created.
	// Orders in this status are waiting to be assigned to a courier.
	Unassigned

	// Assigned indicates the order has been bound to a courier.
	Assigned

	// Accepted indicates the courier has acknowledged the order.
	Accepted

	// EnRoute indicates the courier is driving to the delivery target.
	EnRoute

	// Servicing indicates the courier is fueling the vehicle.
	Servicing

	// Completed indicates the delivery finished and payment capture ran.
	// This is a terminal state.
	Completed

	// Cancelled indicates the order was cancelled before completion.
	// This is a terminal state reachable from any non-terminal status.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string
// representations. All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Unassigned: "Unassigned",
		Assigned:   "Assigned",
		Accepted:   "Accepted",
		EnRoute:    "EnRoute",
		Servicing:  "Servicing",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Unassigned: "Unassigned",
		Assigned:   "Assigned",
		Accepted:   "Accepted",
		EnRoute:    "EnRoute",
		Servicing:  "Servicing",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// getForwardChain returns the static forward-progression table. Each entry
// maps a status to its successor in the normal delivery flow. Terminal
// statuses have no entry.
func getForwardChain() map[Status]Status {
	//nolint:exhaustive // terminal statuses have no successor
	return map[Status]Status{
		Unassigned: Assigned,
		Assigned:   Accepted,
		Accepted:   EnRoute,
		EnRoute:    Servicing,
		Servicing:  Completed,
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Unassigned, Assigned, Accepted, EnRoute, Servicing,
// Completed, Cancelled. Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It returns "Unknown" for invalid status values, so it is safe to call on
// any Status. Implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Next returns the successor of this status in the forward progression
// chain. Terminal statuses (Completed, Cancelled) and invalid values have no
// successor; Unknown is returned as the "no successor" sentinel.
//
// Example:
//
//	order.Unassigned.Next() // order.Assigned
//	order.Servicing.Next()  // order.Completed
//	order.Completed.Next()  // order.Unknown (no successor)
func (s Status) Next() Status {
	if next, ok := getForwardChain()[s]; ok {
		return next
	}
	return Unknown
}

// StatusFromString parses a status from its string name, as produced by
// String. It rejects "Unknown" and any unrecognized name.
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid status", name))
}

// IsTerminal reports whether the status ends the order lifecycle.
// Completed and Cancelled orders accept no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// In reports whether the status is a member of the given set.
func (s Status) In(set []Status) bool {
	for _, member := range set {
		if s == member {
			return true
		}
	}
	return false
}

// DefaultCancellableStatuses returns the default set of statuses from which
// an order may be cancelled: every non-terminal status. Callers may override
// the set per cancellation request.
func DefaultCancellableStatuses() []Status {
	return []Status{Unassigned, Assigned, Accepted, EnRoute, Servicing}
}

// StatusChange is a single record in an order's append-only status history.
// One record is appended per successful status change and records are never
// rewritten.
type StatusChange struct {
	Status Status    `json:"status"`
	At     time.Time `json:"at"`
}
