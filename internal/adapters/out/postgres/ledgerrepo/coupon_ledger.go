// Package ledgerrepo implements the promotional ledgers over postgres:
// coupon redemption per (code, vehicle, user) and referral gallon balances
// per user.
package ledgerrepo

import (
	"context"
	"time"

	"fueldrop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CouponUsageDTO records one redemption of a coupon code.
type CouponUsageDTO struct {
	Code         string    `gorm:"primaryKey"`
	LicensePlate string    `gorm:"primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	UsedAt       time.Time
}

// TableName specifies the database table name for coupon redemptions.
func (CouponUsageDTO) TableName() string {
	return "coupon_usages"
}

// GormCouponLedger implements CouponLedger using GORM.
type GormCouponLedger struct {
	db *gorm.DB
}

// NewGormCouponLedger creates a new GORM coupon ledger.
func NewGormCouponLedger(db *gorm.DB) *GormCouponLedger {
	return &GormCouponLedger{db: db}
}

// MarkUsed records a redemption. Re-marking an existing tuple is a no-op, so
// retried requests cannot double-book a code.
func (l *GormCouponLedger) MarkUsed(ctx context.Context, code, licensePlate string, userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	dto := CouponUsageDTO{
		Code:         code,
		LicensePlate: licensePlate,
		UserID:       userID.Bytes(),
		UsedAt:       time.Now(),
	}
	return l.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}

// Release makes the code redeemable again for the tuple.
// Releasing an unredeemed tuple is a no-op.
func (l *GormCouponLedger) Release(ctx context.Context, code, licensePlate string, userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	return l.db.WithContext(ctx).
		Where("code = ? AND license_plate = ? AND user_id = ?", code, licensePlate, userID.Bytes()).
		Delete(&CouponUsageDTO{}).Error
}
