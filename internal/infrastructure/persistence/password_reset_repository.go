package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shopline/backend/internal/domain/identity"
	"github.com/shopline/backend/internal/domain/shared"
)

// GormPasswordResetRepository implements PasswordResetRepository using GORM
type GormPasswordResetRepository struct {
	db *gorm.DB
}

// NewGormPasswordResetRepository creates a new GormPasswordResetRepository
func NewGormPasswordResetRepository(db *gorm.DB) *GormPasswordResetRepository {
	return &GormPasswordResetRepository{db: db}
}

// Save creates or updates a reset challenge
func (r *GormPasswordResetRepository) Save(ctx context.Context, reset *identity.PasswordReset) error {
	return dbFromContext(ctx, r.db).Save(reset).Error
}

// FindLatestByEmail returns the most recent challenge for the email
func (r *GormPasswordResetRepository) FindLatestByEmail(ctx context.Context, email string) (*identity.PasswordReset, error) {
	var reset identity.PasswordReset
	if err := dbFromContext(ctx, r.db).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Order("created_at DESC").
		First(&reset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &reset, nil
}

// DeleteByEmail drops all challenges for the email
func (r *GormPasswordResetRepository) DeleteByEmail(ctx context.Context, email string) error {
	return dbFromContext(ctx, r.db).
		Delete(&identity.PasswordReset{}, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
}

// Ensure GormPasswordResetRepository implements PasswordResetRepository
var _ identity.PasswordResetRepository = (*GormPasswordResetRepository)(nil)
