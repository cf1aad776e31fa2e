package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/shared"
)

// Session holds the active refresh token of a user. One session per
// user; a new login replaces the previous one.
type Session struct {
	shared.BaseEntity
	UserID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	RefreshTokenHash string    `gorm:"not null"`
	ExpiresAt        time.Time `gorm:"not null"`
}

// NewSession creates a session holding the hash of a refresh token
func NewSession(userID uuid.UUID, refreshToken string, ttl time.Duration) *Session {
	return &Session{
		BaseEntity:       shared.NewBaseEntity(),
		UserID:           userID,
		RefreshTokenHash: HashToken(refreshToken),
		ExpiresAt:        time.Now().Add(ttl),
	}
}

// Rotate replaces the stored token hash after a refresh
func (s *Session) Rotate(refreshToken string, ttl time.Duration) {
	s.RefreshTokenHash = HashToken(refreshToken)
	s.ExpiresAt = time.Now().Add(ttl)
	s.UpdatedAt = time.Now()
}

// Matches verifies a presented refresh token against the stored hash
func (s *Session) Matches(refreshToken string) bool {
	return s.RefreshTokenHash == HashToken(refreshToken)
}

// IsExpired reports whether the session has passed its expiry
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// HashToken returns the hex SHA-256 of a token. Raw refresh tokens
// never touch the database.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
