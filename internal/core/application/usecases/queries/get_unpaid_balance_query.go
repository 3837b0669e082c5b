// Package queries contains read-only operations for the CQRS architecture.
// Query handlers read the database directly, bypassing the domain model, and
// return plain response structs shaped for their callers.
package queries

import (
	"errors"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/pkg/guard"
)

var ErrGetUnpaidBalanceQueryIsNotConstructed = errors.New(
	"GetUnpaidBalanceQuery must be created via NewGetUnpaidBalanceQuery constructor",
)

// GetUnpaidBalanceQuery computes a customer's outstanding balance: the sum of
// completed orders whose charge was never captured. Zero-total orders never
// contribute, whatever their paid flag says.
//
// Example:
//
//	query, err := NewGetUnpaidBalanceQuery(userID)
//	if err != nil {
//	    return err
//	}
//	balance, err := handler.Handle(ctx, query)
type GetUnpaidBalanceQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUnpaidBalanceQuery creates a query for the given customer's balance.
func NewGetUnpaidBalanceQuery(userID kernel.UUID) (GetUnpaidBalanceQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUnpaidBalanceQuery{}, err
	}

	return GetUnpaidBalanceQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// UserID returns the customer whose balance is requested.
func (q GetUnpaidBalanceQuery) UserID() kernel.UUID {
	return q.userID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUnpaidBalanceQueryIsNotConstructed if validation fails.
func (q GetUnpaidBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetUnpaidBalanceQueryIsNotConstructed)
}

// GetUnpaidBalanceQueryResponse carries the outstanding balance in cents.
type GetUnpaidBalanceQueryResponse struct {
	UnpaidCents int
}
