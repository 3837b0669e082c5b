// Package user provides the customer/courier account entity consulted by the
// order workflows for notification capabilities, referral resolution and
// profile details.
package user

import (
	"errors"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/pkg/errs"
	"fueldrop/internal/pkg/guard"
)

var (
	// ErrUserIsNotConstructed is returned when a User was not created through
	// the NewUser constructor.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

	// ErrUserNameIsRequired is returned when attempting to create a user without a name.
	ErrUserNameIsRequired = errs.NewValueIsRequiredError("name")
)

// User is an account in the delivery system. Managed accounts are operated by
// the platform itself (fleet vehicles, test accounts) and are excluded from
// promotional messaging. SupportsRichText records the push channel's
// capability instead of inferring it from the endpoint token.
type User struct {
	id               kernel.UUID
	name             string
	phone            string
	referralCode     string
	managed          bool
	supportsRichText bool

	guard guard.ConstructorGuard
}

// NewUser creates a User with the given identity and notification
// capabilities. Referral code may be empty for accounts that never shared one.
func NewUser(
	id kernel.UUID,
	name string,
	phone string,
	referralCode string,
	managed bool,
	supportsRichText bool,
) (*User, error) {
	u := &User{
		guard: guard.NewConstructorGuard(),
	}

	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrUserNameIsRequired
	}

	u.id = id
	u.name = name
	u.phone = phone
	u.referralCode = referralCode
	u.managed = managed
	u.supportsRichText = supportsRichText
	return u, nil
}

// Validate checks if the User was properly constructed via NewUser.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the account holder's display name.
func (u *User) Name() string {
	return u.name
}

// Phone returns the account's contact number.
func (u *User) Phone() string {
	return u.phone
}

// ReferralCode returns the code this user shares to refer others.
func (u *User) ReferralCode() string {
	return u.referralCode
}

// Managed reports whether the account is operated by the platform.
// Managed accounts receive no promotional upsells.
func (u *User) Managed() bool {
	return u.managed
}

// SupportsRichText reports whether the account's push channel renders
// decorated text.
func (u *User) SupportsRichText() bool {
	return u.supportsRichText
}
