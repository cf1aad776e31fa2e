package catalog

import (
	"time"

	"github.com/shopline/backend/internal/domain/shared"
)

// Brand represents a product brand
type Brand struct {
	shared.BaseAggregateRoot
	Name string `gorm:"not null"`
	Slug string `gorm:"uniqueIndex;not null"`
	Logo string
}

// NewBrand creates a new brand
func NewBrand(name, slug, logo string) (*Brand, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Brand name cannot be empty")
	}
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Brand slug cannot be empty")
	}
	return &Brand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		Logo:              logo,
	}, nil
}

// Update changes the brand name, slug and logo
func (b *Brand) Update(name, slug, logo string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Brand name cannot be empty")
	}
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Brand slug cannot be empty")
	}
	b.Name = name
	b.Slug = slug
	b.Logo = logo
	b.UpdatedAt = time.Now()
	return nil
}
