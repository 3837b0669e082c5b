// Package userrepo provides read access to user records for the order
// workflows. Accounts are written by the accounts system; this service only
// consumes them.
package userrepo

import (
	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure of a user record.
type UserDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string
	Phone            string
	ReferralCode     string `gorm:"index"`
	Managed          bool
	SupportsRichText bool
}

// TableName specifies the database table name for user records.
func (UserDTO) TableName() string {
	return "users"
}

// toDomain converts a database DTO to a user entity.
func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return user.NewUser(id, dto.Name, dto.Phone, dto.ReferralCode, dto.Managed, dto.SupportsRichText)
}
