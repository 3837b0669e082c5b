// Package ports defines the contracts between the application core and
// infrastructure. Repository interfaces cover persistence; gateway interfaces
// cover the external systems an order touches over its lifecycle.
package ports

import (
	"context"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and payment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its status log and payment record.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UnpaidBalance returns the total, in cents, of the user's completed
	// orders that carried a charge but were never successfully captured.
	UnpaidBalance(ctx context.Context, userID kernel.UUID) (int, error)
}
