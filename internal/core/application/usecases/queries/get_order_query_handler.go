package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/order"
	"fueldrop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves order projections from the database.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order: %v", err)
//	    return err
//	}
//	fmt.Printf("Order %s is %s\n", view.ID, view.Status)
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order display queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query for one order.
// Returns errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var row struct {
		ID         uuid.UUID
		UserID     uuid.UUID
		CourierID  sql.NullString
		Status     int
		StatusLog  []byte
		GasType    string
		Gallons    int
		TotalPrice int
		Paid       bool
		RefundID   string
		Street     string
		City       string
		State      string
		Zip        string
		TimePaid   time.Time
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			courier_id,
			status,
			status_log,
			gas_type,
			gallons,
			total_price,
			paid,
			refund_id,
			street,
			city,
			state,
			zip,
			time_paid
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Scan(&row).Error
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if row.ID == uuid.Nil {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID())
	}

	response := GetOrderQueryResponse{
		Status:     order.Status(row.Status),
		GasType:    row.GasType,
		Gallons:    row.Gallons,
		TotalPrice: row.TotalPrice,
		Paid:       row.Paid,
		RefundID:   row.RefundID,
		Street:     row.Street,
		City:       row.City,
		State:      row.State,
		Zip:        row.Zip,
		TimePaid:   row.TimePaid,
	}

	if response.ID, err = kernel.UUIDFromBytes(row.ID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.UserID, err = kernel.UUIDFromBytes(row.UserID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if row.CourierID.Valid {
		courierID, idErr := kernel.UUIDFromString(row.CourierID.String)
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		response.CourierID = &courierID
	}
	if len(row.StatusLog) > 0 {
		if err = json.Unmarshal(row.StatusLog, &response.StatusLog); err != nil {
			return GetOrderQueryResponse{}, err
		}
	}

	return response, nil
}
