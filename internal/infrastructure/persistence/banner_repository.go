package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopline/backend/internal/domain/catalog"
	"github.com/shopline/backend/internal/domain/shared"
)

// GormBannerRepository implements BannerRepository using GORM
type GormBannerRepository struct {
	db *gorm.DB
}

// NewGormBannerRepository creates a new GormBannerRepository
func NewGormBannerRepository(db *gorm.DB) *GormBannerRepository {
	return &GormBannerRepository{db: db}
}

// Save creates or updates a banner
func (r *GormBannerRepository) Save(ctx context.Context, banner *catalog.Banner) error {
	return dbFromContext(ctx, r.db).Save(banner).Error
}

// FindByID finds a banner by its ID
func (r *GormBannerRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Banner, error) {
	var banner catalog.Banner
	if err := dbFromContext(ctx, r.db).First(&banner, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &banner, nil
}

// FindActiveByPosition returns the active banners for a storefront slot
func (r *GormBannerRepository) FindActiveByPosition(ctx context.Context, position catalog.BannerPosition) ([]*catalog.Banner, error) {
	var banners []*catalog.Banner
	if err := dbFromContext(ctx, r.db).
		Where("position = ? AND is_active = ?", position, true).
		Order("created_at DESC").
		Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

// FindAll finds banners matching the filter
func (r *GormBannerRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*catalog.Banner], error) {
	db := dbFromContext(ctx, r.db)

	base := db.Model(&catalog.Banner{})
	if filter.Search != "" {
		base = base.Where("LOWER(title) LIKE ?", searchPattern(filter.Search))
	}
	for key, value := range filter.Filters {
		switch key {
		case "position":
			base = base.Where("position = ?", value)
		case "is_active":
			base = base.Where("is_active = ?", value)
		}
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var banners []*catalog.Banner
	if err := applyPagination(base, filter).Find(&banners).Error; err != nil {
		return nil, err
	}

	return shared.NewPaginated(banners, total, filter.Page, filter.PageSize), nil
}

// Delete deletes a banner
func (r *GormBannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&catalog.Banner{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormBannerRepository implements BannerRepository
var _ catalog.BannerRepository = (*GormBannerRepository)(nil)
