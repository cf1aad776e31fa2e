package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/shared"
)

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Product], error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// DeductStock atomically subtracts quantity and adds to buy_turn.
	// Fails with shared.ErrInsufficientStock when on-hand stock is short.
	DeductStock(ctx context.Context, id uuid.UUID, quantity int) error
	// RestoreStock reverses a deduction after a cancellation.
	RestoreStock(ctx context.Context, id uuid.UUID, quantity int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines the persistence contract for categories
type CategoryRepository interface {
	Save(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Category], error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BrandRepository defines the persistence contract for brands
type BrandRepository interface {
	Save(ctx context.Context, brand *Brand) error
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)
	FindBySlug(ctx context.Context, slug string) (*Brand, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Brand], error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BannerRepository defines the persistence contract for banners
type BannerRepository interface {
	Save(ctx context.Context, banner *Banner) error
	FindByID(ctx context.Context, id uuid.UUID) (*Banner, error)
	FindActiveByPosition(ctx context.Context, position BannerPosition) ([]*Banner, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Banner], error)
	Delete(ctx context.Context, id uuid.UUID) error
}
