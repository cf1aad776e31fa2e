package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopline/backend/internal/domain/shared"
	"github.com/shopline/backend/internal/domain/shared/valueobject"
)

// ProductStatus represents the availability status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive:
		return true
	}
	return false
}

// String returns the string representation of ProductStatus
func (s ProductStatus) String() string {
	return string(s)
}

// Product represents a sellable product aggregate root.
// Quantity is the on-hand stock; BuyTurn counts units sold and drives
// the best-seller sort.
type Product struct {
	shared.BaseAggregateRoot
	Name          string                 `gorm:"not null;index"`
	Slug          string                 `gorm:"uniqueIndex;not null"`
	Description   string                 `gorm:"type:text"`
	Price         decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	OldPrice      *decimal.Decimal       `gorm:"type:decimal(18,2)"`
	Images        valueobject.StringList `gorm:"type:jsonb"`
	Specification valueobject.JSONMap    `gorm:"type:jsonb"`
	Quantity      int                    `gorm:"not null;default:0"`
	BuyTurn       int                    `gorm:"not null;default:0"`
	BrandID       *uuid.UUID             `gorm:"type:uuid;index"`
	CategoryID    *uuid.UUID             `gorm:"type:uuid;index"`
	Status        ProductStatus          `gorm:"not null;default:active;index"`
	Deleted       bool                   `gorm:"not null;default:false;index"`
	DeletedAt     *time.Time
}

// NewProduct creates a new product in active status
func NewProduct(name, slug string, price decimal.Decimal, quantity int) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Product slug cannot be empty")
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price must be positive")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Product quantity cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		Price:             price,
		Quantity:          quantity,
		Status:            ProductStatusActive,
	}, nil
}

// UpdateDetails updates the descriptive fields of the product
func (p *Product) UpdateDetails(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	return nil
}

// SetPricing updates the price and optional crossed-out old price.
// The old price, when present, must not be below the current price.
func (p *Product) SetPricing(price decimal.Decimal, oldPrice *decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Product price must be positive")
	}
	if oldPrice != nil && oldPrice.LessThan(price) {
		return shared.NewDomainError("INVALID_PRICE", "Old price cannot be below current price")
	}
	p.Price = price
	p.OldPrice = oldPrice
	p.UpdatedAt = time.Now()
	return nil
}

// SetStock replaces the on-hand quantity
func (p *Product) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Product quantity cannot be negative")
	}
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
	return nil
}

// SetImages replaces the product image URLs
func (p *Product) SetImages(urls []string) {
	p.Images = valueobject.StringList(urls)
	p.UpdatedAt = time.Now()
}

// AddImage appends an image URL
func (p *Product) AddImage(url string) {
	p.Images = append(p.Images, url)
	p.UpdatedAt = time.Now()
}

// SetSpecification replaces the free-form specification blob
func (p *Product) SetSpecification(spec map[string]interface{}) {
	p.Specification = valueobject.JSONMap(spec)
	p.UpdatedAt = time.Now()
}

// AssignBrand links the product to a brand
func (p *Product) AssignBrand(brandID uuid.UUID) {
	p.BrandID = &brandID
	p.UpdatedAt = time.Now()
}

// AssignCategory links the product to a category
func (p *Product) AssignCategory(categoryID uuid.UUID) {
	p.CategoryID = &categoryID
	p.UpdatedAt = time.Now()
}

// Activate makes the product purchasable
func (p *Product) Activate() error {
	if p.Deleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot activate a deleted product")
	}
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate hides the product from the storefront
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
}

// MarkDeleted soft-deletes the product
func (p *Product) MarkDeleted() error {
	if p.Deleted {
		return shared.NewDomainError("INVALID_STATE", "Product is already deleted")
	}
	now := time.Now()
	p.Deleted = true
	p.DeletedAt = &now
	p.UpdatedAt = now
	return nil
}

// IsAvailable reports whether the product can appear in carts and orders
func (p *Product) IsAvailable() bool {
	return p.Status == ProductStatusActive && !p.Deleted
}

// CanFulfill reports whether the on-hand stock covers the requested quantity
func (p *Product) CanFulfill(quantity int) bool {
	return quantity > 0 && p.Quantity >= quantity
}

// InsufficientStock builds the rejection for a request the on-hand
// stock cannot cover, naming how many units remain
func (p *Product) InsufficientStock() *shared.DomainError {
	return shared.NewDomainError("INSUFFICIENT_STOCK",
		fmt.Sprintf("Only %d left in stock", p.Quantity))
}
