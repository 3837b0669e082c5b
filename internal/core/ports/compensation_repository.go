package ports

import (
	"context"

	"fueldrop/internal/core/domain/model/compensation"
)

// CompensationRepository defines the persistence contract for the durable
// compensation queue. Steps are enqueued in the same transaction that cancels
// the order and drained by the background worker.
type CompensationRepository interface {
	// Add persists a batch of pending steps.
	// Called once per cancellation with the full ordered plan.
	Add(ctx context.Context, steps []*compensation.Step) error

	// Update persists an executed step's attempt counter and done flag.
	Update(ctx context.Context, step *compensation.Step) error

	// GetNextPending retrieves, for each order with outstanding work, the
	// pending step with the lowest sequence number. Later steps of an order
	// are never returned while an earlier one is pending.
	GetNextPending(ctx context.Context, limit int) ([]*compensation.Step, error)
}
