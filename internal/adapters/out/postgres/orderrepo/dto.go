// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status log is serialized as a JSON document so the append-only history
// travels with the row and commits atomically with the status column.
type OrderDTO struct {
	ID        uuid.UUID            `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID            `gorm:"type:uuid;index"`
	CourierID *uuid.UUID           `gorm:"type:uuid;index"`
	Status    int                  `gorm:"index"`
	StatusLog []order.StatusChange `gorm:"serializer:json;type:jsonb"`

	GasType             string
	Gallons             int
	GasPrice            int
	ServiceFee          int
	TotalPrice          int
	LicensePlate        string
	CouponCode          string
	ReferralGallonsUsed int

	Paid                 bool
	ChargeID             string
	ChargedCustomerID    string
	BalanceTransactionID string
	TimePaid             time.Time
	PaymentInfo          string
	RefundID             string

	Street      string
	City        string
	State       string
	Zip         string
	Latitude    float64
	Longitude   float64
	WindowStart time.Time
	WindowEnd   time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := o.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:        o.ID().Bytes(),
		UserID:    o.UserID().Bytes(),
		CourierID: courierID,
		Status:    int(o.Status()),
		StatusLog: o.StatusLog(),

		GasType:             o.GasType(),
		Gallons:             o.Gallons(),
		GasPrice:            o.GasPrice(),
		ServiceFee:          o.ServiceFee(),
		TotalPrice:          o.TotalPrice(),
		LicensePlate:        o.LicensePlate(),
		CouponCode:          o.CouponCode(),
		ReferralGallonsUsed: o.ReferralGallonsUsed(),

		Paid:                 o.Paid(),
		ChargeID:             o.ChargeID(),
		ChargedCustomerID:    o.ChargedCustomerID(),
		BalanceTransactionID: o.BalanceTransactionID(),
		TimePaid:             o.TimePaid(),
		PaymentInfo:          o.PaymentInfo(),
		RefundID:             o.RefundID(),

		Street:      o.Address().Street,
		City:        o.Address().City,
		State:       o.Address().State,
		Zip:         o.Address().Zip,
		Latitude:    float64(o.Location().Latitude()),
		Longitude:   float64(o.Location().Longitude()),
		WindowStart: o.WindowStart(),
		WindowEnd:   o.WindowEnd(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including its status history and
// payment outcome using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	location, err := kernel.NewLocation(kernel.Degrees(dto.Latitude), kernel.Degrees(dto.Longitude))
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:        id,
		UserID:    userID,
		CourierID: courierID,
		Status:    order.Status(dto.Status),
		StatusLog: dto.StatusLog,
		Details: order.Details{
			GasType:             dto.GasType,
			Gallons:             dto.Gallons,
			GasPrice:            dto.GasPrice,
			ServiceFee:          dto.ServiceFee,
			TotalPrice:          dto.TotalPrice,
			LicensePlate:        dto.LicensePlate,
			CouponCode:          dto.CouponCode,
			ReferralGallonsUsed: dto.ReferralGallonsUsed,
			ChargeID:            dto.ChargeID,
			Address: order.Address{
				Street: dto.Street,
				City:   dto.City,
				State:  dto.State,
				Zip:    dto.Zip,
			},
			Location:    location,
			WindowStart: dto.WindowStart,
			WindowEnd:   dto.WindowEnd,
		},
		Paid:                 dto.Paid,
		ChargeID:             dto.ChargeID,
		ChargedCustomerID:    dto.ChargedCustomerID,
		BalanceTransactionID: dto.BalanceTransactionID,
		TimePaid:             dto.TimePaid,
		PaymentInfo:          dto.PaymentInfo,
		RefundID:             dto.RefundID,
	})
}
