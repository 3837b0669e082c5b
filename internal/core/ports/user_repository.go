package ports

import (
	"context"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/domain/model/user"
)

// UserRepository defines the read contract for user records. Users are owned
// by the accounts system; this service only reads them for notifications and
// referral lookups.
type UserRepository interface {
	// Get retrieves a user by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// FindByReferralCode retrieves the user owning the given referral code.
	// Returns errs.ObjectNotFoundError when no user carries the code.
	FindByReferralCode(ctx context.Context, code string) (*user.User, error)
}
