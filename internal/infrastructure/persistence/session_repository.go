package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopline/backend/internal/domain/identity"
	"github.com/shopline/backend/internal/domain/shared"
)

// GormSessionRepository implements SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GormSessionRepository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Save upserts on user_id so a new login replaces the old session
func (r *GormSessionRepository) Save(ctx context.Context, session *identity.Session) error {
	return dbFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"refresh_token_hash", "expires_at", "updated_at"}),
		}).
		Create(session).Error
}

// FindByUserID finds the active session of a user
func (r *GormSessionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Session, error) {
	var session identity.Session
	if err := dbFromContext(ctx, r.db).First(&session, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// DeleteByUserID drops the session of a user (logout)
func (r *GormSessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return dbFromContext(ctx, r.db).Delete(&identity.Session{}, "user_id = ?", userID).Error
}

// Ensure GormSessionRepository implements SessionRepository
var _ identity.SessionRepository = (*GormSessionRepository)(nil)
