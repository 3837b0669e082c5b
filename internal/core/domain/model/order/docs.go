// Package order provides domain entities and business logic for fuel delivery
// order management. It implements the Order aggregate root with lifecycle
// management, a status state machine and payment outcome recording.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine enforcing the forward delivery progression plus cancellation
//   - StatusChange: The append-only status history record
//   - PaymentCapture / PaymentRefund: gateway outcomes persisted onto the order
//
// Key business rules:
//   - Status follows the chain: Unassigned -> Assigned -> Accepted -> EnRoute -> Servicing -> Completed
//   - Cancellation is reachable from any non-terminal status
//   - Completed and Cancelled are terminal; orders become immutable there
//   - paid is set only from a capture outcome's Captured indicator
//   - Coupon and referral fields are cleared only by cancellation compensation
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
