package identity

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopline/backend/internal/domain/shared"
)

// OTP reset codes expire quickly and are single use
const (
	otpLength         = 6
	otpTTL            = 10 * time.Minute
	maxOTPAttempts    = 5
	otpResendCooldown = time.Minute
)

// PasswordReset is a one-time OTP challenge for the forgot-password flow
type PasswordReset struct {
	shared.BaseEntity
	Email     string    `gorm:"not null;index"`
	OTPHash   string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Attempts  int       `gorm:"not null;default:0"`
	Verified  bool      `gorm:"not null;default:false"`
	Used      bool      `gorm:"not null;default:false"`
}

// NewPasswordReset creates a reset challenge and returns it together
// with the plaintext OTP for delivery. Only the hash is stored.
func NewPasswordReset(email string) (*PasswordReset, string, error) {
	otp, err := generateOTP()
	if err != nil {
		return nil, "", shared.NewDomainError("OTP_GENERATION_ERROR", "Failed to generate reset code")
	}

	reset := &PasswordReset{
		BaseEntity: shared.NewBaseEntity(),
		Email:      strings.ToLower(strings.TrimSpace(email)),
		OTPHash:    HashToken(otp),
		ExpiresAt:  time.Now().Add(otpTTL),
	}

	return reset, otp, nil
}

// Verify consumes one attempt and checks the presented OTP. The
// challenge burns out after expiry, use, or too many attempts.
func (r *PasswordReset) Verify(otp string) error {
	if r.Used {
		return shared.NewDomainError("OTP_USED", "Reset code has already been used")
	}
	if time.Now().After(r.ExpiresAt) {
		return shared.NewDomainError("OTP_EXPIRED", "Reset code has expired")
	}
	if r.Attempts >= maxOTPAttempts {
		return shared.NewDomainError("OTP_LOCKED", "Too many attempts, request a new code")
	}

	r.Attempts++
	r.UpdatedAt = time.Now()

	if r.OTPHash != HashToken(otp) {
		return shared.NewDomainError("OTP_MISMATCH", "Reset code is incorrect")
	}

	return nil
}

// MarkVerified records a successful OTP check ahead of the reset
func (r *PasswordReset) MarkVerified() {
	r.Verified = true
	r.UpdatedAt = time.Now()
}

// ResendAllowed rate-limits new codes for the same challenge
func (r *PasswordReset) ResendAllowed() bool {
	return time.Since(r.CreatedAt) >= otpResendCooldown
}

// MarkUsed consumes the challenge after a successful reset
func (r *PasswordReset) MarkUsed() {
	r.Used = true
	r.UpdatedAt = time.Now()
}

func generateOTP() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpLength, n), nil
}
