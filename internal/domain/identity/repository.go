package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/shared"
)

// UserRepository defines the persistence contract for users
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*User], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SessionRepository defines the persistence contract for refresh sessions
type SessionRepository interface {
	// Save upserts on user_id so a new login replaces the old session
	Save(ctx context.Context, session *Session) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Session, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// AddressRepository defines the persistence contract for addresses
type AddressRepository interface {
	Save(ctx context.Context, address *Address) error
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Address, error)
	// ClearDefault drops the default flag on all of a user's addresses
	ClearDefault(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PasswordResetRepository defines the persistence contract for OTP resets
type PasswordResetRepository interface {
	Save(ctx context.Context, reset *PasswordReset) error
	// FindLatestByEmail returns the most recent challenge for the email
	FindLatestByEmail(ctx context.Context, email string) (*PasswordReset, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// Mailer delivers transactional mail such as OTP reset codes
type Mailer interface {
	SendPasswordResetOTP(ctx context.Context, email, otp string) error
}
