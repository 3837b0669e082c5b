package queries

import (
	"context"

	"fueldrop/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetUnpaidBalanceQueryHandler computes unpaid balances straight from the
// orders table.
//
// Example:
//
//	handler := NewGetUnpaidBalanceQueryHandler(db)
//	query, _ := NewGetUnpaidBalanceQuery(userID)
//
//	balance, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to compute balance: %v", err)
//	    return err
//	}
//	fmt.Printf("Outstanding: $%.2f\n", float64(balance.UnpaidCents)/100)
type GetUnpaidBalanceQueryHandler struct {
	db *gorm.DB
}

// NewGetUnpaidBalanceQueryHandler creates a handler for unpaid balance queries.
// Requires a GORM database connection for query execution.
func NewGetUnpaidBalanceQueryHandler(db *gorm.DB) GetUnpaidBalanceQueryHandler {
	return GetUnpaidBalanceQueryHandler{db: db}
}

// Handle executes the aggregate query.
// An order counts toward the balance exactly when it is completed, unpaid and
// carries a positive total.
func (h GetUnpaidBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetUnpaidBalanceQuery,
) (GetUnpaidBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetUnpaidBalanceQueryResponse{}, err
	}

	var unpaid int
	err := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_price), 0)
		FROM orders
		WHERE user_id = ?
		  AND status = ?
		  AND paid = false
		  AND total_price > 0
	`, query.UserID().String(), order.Completed).Scan(&unpaid).Error
	if err != nil {
		return GetUnpaidBalanceQueryResponse{}, err
	}

	return GetUnpaidBalanceQueryResponse{UnpaidCents: unpaid}, nil
}
