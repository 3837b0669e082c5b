// Package capacityrepo is the single owner of courier load accounting.
// A courier's active load is the set of rows binding them to live orders;
// assignment inserts a row, completion and cancellation delete it.
package capacityrepo

import (
	"context"
	"time"

	"fueldrop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssignmentDTO binds one order to one courier's active load.
type AssignmentDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID  uuid.UUID `gorm:"type:uuid;index"`
	AcquiredAt time.Time
}

// TableName specifies the database table name for capacity bindings.
func (AssignmentDTO) TableName() string {
	return "courier_assignments"
}

// GormCourierCapacity implements CourierCapacity using GORM.
type GormCourierCapacity struct {
	db *gorm.DB
}

// NewGormCourierCapacity creates a new GORM courier capacity tracker.
func NewGormCourierCapacity(db *gorm.DB) *GormCourierCapacity {
	return &GormCourierCapacity{db: db}
}

// Acquire binds the order to the courier's active load.
// The order id is the primary key, so two couriers can never hold the same
// order and re-acquiring an existing binding is a no-op.
func (c *GormCourierCapacity) Acquire(ctx context.Context, courierID, orderID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	dto := AssignmentDTO{
		OrderID:    orderID.Bytes(),
		CourierID:  courierID.Bytes(),
		AcquiredAt: time.Now(),
	}
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}

// Release removes the order from the courier's active load.
// Releasing an order that holds no slot is a no-op, which keeps completion
// and cancellation compensation safe to retry.
func (c *GormCourierCapacity) Release(ctx context.Context, courierID, orderID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	return c.db.WithContext(ctx).
		Where("order_id = ? AND courier_id = ?", orderID.Bytes(), courierID.Bytes()).
		Delete(&AssignmentDTO{}).Error
}
