package catalog

import (
	"time"

	"github.com/shopline/backend/internal/domain/shared"
)

// Category represents a product category
type Category struct {
	shared.BaseAggregateRoot
	Name string `gorm:"not null"`
	Slug string `gorm:"uniqueIndex;not null"`
}

// NewCategory creates a new category
func NewCategory(name, slug string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Category slug cannot be empty")
	}
	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
	}, nil
}

// Rename updates the category name and slug
func (c *Category) Rename(name, slug string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Category slug cannot be empty")
	}
	c.Name = name
	c.Slug = slug
	c.UpdatedAt = time.Now()
	return nil
}
