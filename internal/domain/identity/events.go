package identity

import "github.com/shopline/backend/internal/domain/shared"

// UserRegisteredEvent fires when a new account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserRegisteredEvent creates a UserRegisteredEvent
func NewUserRegisteredEvent(u *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("identity.user_registered", "User", u.ID),
		Email:           u.Email,
	}
}

// UserPasswordChangedEvent fires when a password is changed or reset
type UserPasswordChangedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserPasswordChangedEvent creates a UserPasswordChangedEvent
func NewUserPasswordChangedEvent(u *User) *UserPasswordChangedEvent {
	return &UserPasswordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("identity.password_changed", "User", u.ID),
		Email:           u.Email,
	}
}
