package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopline/backend/internal/domain/review"
	"github.com/shopline/backend/internal/domain/shared"
)

// GormReviewRepository implements review.Repository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, rev *review.Review) error {
	return dbFromContext(ctx, r.db).Save(rev).Error
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	var rev review.Review
	if err := dbFromContext(ctx, r.db).First(&rev, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rev, nil
}

// FindByUserAndProduct finds the user's review of a product
func (r *GormReviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*review.Review, error) {
	var rev review.Review
	if err := dbFromContext(ctx, r.db).
		First(&rev, "user_id = ? AND product_id = ?", userID, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rev, nil
}

// FindVisibleByProduct pages the non-hidden reviews of a product
func (r *GormReviewRepository) FindVisibleByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[*review.Review], error) {
	db := dbFromContext(ctx, r.db)

	base := db.Model(&review.Review{}).
		Where("product_id = ? AND is_hidden = ?", productID, false)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var reviews []*review.Review
	if err := applyPagination(base, filter).Find(&reviews).Error; err != nil {
		return nil, err
	}

	return shared.NewPaginated(reviews, total, filter.Page, filter.PageSize), nil
}

// FindAll pages all reviews for moderation, hidden included
func (r *GormReviewRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*review.Review], error) {
	db := dbFromContext(ctx, r.db)

	base := db.Model(&review.Review{})
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			base = base.Where("product_id = ?", value)
		case "user_id":
			base = base.Where("user_id = ?", value)
		case "is_hidden":
			base = base.Where("is_hidden = ?", value)
		case "rating":
			base = base.Where("rating = ?", value)
		case "has_reply":
			if hasReply, ok := value.(bool); ok {
				if hasReply {
					base = base.Where("reply <> ''")
				} else {
					base = base.Where("reply = ''")
				}
			}
		}
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var reviews []*review.Review
	if err := applyPagination(base, filter).Find(&reviews).Error; err != nil {
		return nil, err
	}

	return shared.NewPaginated(reviews, total, filter.Page, filter.PageSize), nil
}

// AverageRating returns the mean rating and count over non-hidden reviews
func (r *GormReviewRepository) AverageRating(ctx context.Context, productID uuid.UUID) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	if err := dbFromContext(ctx, r.db).
		Model(&review.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("product_id = ? AND is_hidden = ?", productID, false).
		Scan(&result).Error; err != nil {
		return 0, 0, err
	}
	return result.Avg, result.Count, nil
}

// Delete deletes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&review.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormReviewRepository implements review.Repository
var _ review.Repository = (*GormReviewRepository)(nil)
