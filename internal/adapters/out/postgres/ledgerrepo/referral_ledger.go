package ledgerrepo

import (
	"context"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReferralBalanceDTO holds one user's referral gallon balance.
type ReferralBalanceDTO struct {
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Gallons int
}

// TableName specifies the database table name for referral balances.
func (ReferralBalanceDTO) TableName() string {
	return "referral_balances"
}

// GormReferralLedger implements ReferralLedger using GORM.
type GormReferralLedger struct {
	db *gorm.DB
}

// NewGormReferralLedger creates a new GORM referral ledger.
func NewGormReferralLedger(db *gorm.DB) *GormReferralLedger {
	return &GormReferralLedger{db: db}
}

// Credit adds gallons to the user's balance, creating the row on first use.
func (l *GormReferralLedger) Credit(ctx context.Context, userID kernel.UUID, gallons int) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if gallons <= 0 {
		return errs.NewValueIsInvalidError("gallons must be positive")
	}

	dto := ReferralBalanceDTO{UserID: userID.Bytes(), Gallons: gallons}
	return l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{"gallons": gorm.Expr("referral_balances.gallons + ?", gallons)}),
		}).
		Create(&dto).Error
}

// Debit removes gallons from the user's balance.
// Fails when the balance would go negative.
func (l *GormReferralLedger) Debit(ctx context.Context, userID kernel.UUID, gallons int) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if gallons <= 0 {
		return errs.NewValueIsInvalidError("gallons must be positive")
	}

	result := l.db.WithContext(ctx).
		Model(&ReferralBalanceDTO{}).
		Where("user_id = ? AND gallons >= ?", userID.Bytes(), gallons).
		Update("gallons", gorm.Expr("gallons - ?", gallons))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewValueIsOutOfRangeError("gallons", gallons, 0, nil)
	}

	return nil
}
