package userrepo

import (
	"context"
	"errors"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/user"
	"fueldrop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Get retrieves a user by ID.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByReferralCode retrieves the user owning the given referral code.
func (r *GormUserRepository) FindByReferralCode(ctx context.Context, code string) (*user.User, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "referral_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("referral_code", code)
		}
		return nil, err
	}

	return toDomain(dto)
}
