package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/identity"
	"github.com/shopline/backend/internal/infrastructure/auth"
)

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Name     string `json:"name" binding:"required,max=200"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ForgotPasswordRequest starts the OTP reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOTPRequest checks a reset code without consuming it
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

// ResendOTPRequest asks for a fresh reset code
type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the OTP reset flow
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// UpdateProfileRequest updates the caller's profile
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Phone string `json:"phone" binding:"max=20"`
}

// ChangePasswordRequest changes the caller's password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// UserListFilter represents filter options for admin user listings
type UserListFilter struct {
	Role     string `form:"role" binding:"omitempty,oneof=customer admin"`
	Status   string `form:"status" binding:"omitempty,oneof=active locked"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=created_at email name"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateAddressRequest adds an address to the caller's address book
type CreateAddressRequest struct {
	ReceiverName string `json:"receiver_name" binding:"required,max=200"`
	Phone        string `json:"phone" binding:"required,max=20"`
	Line         string `json:"line" binding:"required,max=300"`
	Ward         string `json:"ward" binding:"max=100"`
	District     string `json:"district" binding:"max=100"`
	City         string `json:"city" binding:"required,max=100"`
	IsDefault    bool   `json:"is_default"`
}

// UpdateAddressRequest replaces an address in the caller's address book
type UpdateAddressRequest struct {
	ReceiverName string `json:"receiver_name" binding:"required,max=200"`
	Phone        string `json:"phone" binding:"required,max=20"`
	Line         string `json:"line" binding:"required,max=300"`
	Ward         string `json:"ward" binding:"max=100"`
	District     string `json:"district" binding:"max=100"`
	City         string `json:"city" binding:"required,max=100"`
	IsDefault    bool   `json:"is_default"`
}

// AvatarUploadURLRequest asks for a presigned avatar upload
type AvatarUploadURLRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// AvatarUploadURLResponse carries the presigned upload
type AvatarUploadURLResponse struct {
	UploadURL  string    `json:"upload_url"`
	PublicURL  string    `json:"public_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ConfirmAvatarRequest finalizes an avatar upload
type ConfirmAvatarRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
}

// UserResponse represents a user in API responses. The password hash
// never leaves the domain.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone,omitempty"`
	Avatar      string     `json:"avatar,omitempty"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AuthResponse carries the user and a fresh token pair
type AuthResponse struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	ID           uuid.UUID `json:"id"`
	ReceiverName string    `json:"receiver_name"`
	Phone        string    `json:"phone"`
	Line         string    `json:"line"`
	Ward         string    `json:"ward,omitempty"`
	District     string    `json:"district,omitempty"`
	City         string    `json:"city"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Phone:       u.Phone,
		Avatar:      u.Avatar,
		Role:        u.Role.String(),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ToAddressResponse converts a domain Address to AddressResponse
func ToAddressResponse(a *identity.Address) AddressResponse {
	return AddressResponse{
		ID:           a.ID,
		ReceiverName: a.ReceiverName,
		Phone:        a.Phone,
		Line:         a.Line,
		Ward:         a.Ward,
		District:     a.District,
		City:         a.City,
		IsDefault:    a.IsDefault,
		CreatedAt:    a.CreatedAt,
	}
}
