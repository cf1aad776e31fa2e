package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopline/backend/internal/domain/shared"
	"github.com/shopline/backend/internal/domain/shared/valueobject"
)

const maxItemQuantity = 999

// CartItem is a line in a shopping cart. Price is captured at the time
// the product is added; checkout re-reads the live price.
type CartItem struct {
	shared.BaseEntity
	CartID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Variant   valueobject.Variant `gorm:"type:jsonb"`
	Quantity  int                 `gorm:"not null"`
	Price     decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
}

// Subtotal returns price times quantity for the line
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the per-user shopping cart aggregate. One cart per user.
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID   `gorm:"type:uuid;uniqueIndex;not null"`
	Items  []*CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) *Cart {
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
	}
}

// AddItem puts a product into the cart. A line with the same product
// and matching variant absorbs the quantity instead of creating a
// duplicate line.
func (c *Cart) AddItem(productID uuid.UUID, variant valueobject.Variant, quantity int, price decimal.Decimal) (*CartItem, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}

	if existing := c.findLine(productID, variant); existing != nil {
		if existing.Quantity+quantity > maxItemQuantity {
			return nil, shared.NewDomainError("QUANTITY_LIMIT", "Quantity exceeds the per-line limit")
		}
		existing.Quantity += quantity
		existing.UpdatedAt = time.Now()
		c.UpdatedAt = time.Now()
		return existing, nil
	}

	if quantity > maxItemQuantity {
		return nil, shared.NewDomainError("QUANTITY_LIMIT", "Quantity exceeds the per-line limit")
	}

	item := &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     c.ID,
		ProductID:  productID,
		Variant:    variant,
		Quantity:   quantity,
		Price:      price,
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now()
	return item, nil
}

// UpdateItemQuantity sets the quantity of an existing line.
// Zero removes the line.
func (c *Cart) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if quantity > maxItemQuantity {
		return shared.NewDomainError("QUANTITY_LIMIT", "Quantity exceeds the per-line limit")
	}

	for idx, item := range c.Items {
		if item.ID == itemID {
			if quantity == 0 {
				c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			} else {
				item.Quantity = quantity
				item.UpdatedAt = time.Now()
			}
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveItem deletes a line from the cart
func (c *Cart) RemoveItem(itemID uuid.UUID) error {
	for idx, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Clear drops all lines
func (c *Cart) Clear() {
	c.Items = nil
	c.UpdatedAt = time.Now()
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalQuantity sums the quantity across all lines
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal sums the line subtotals at captured prices
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (c *Cart) findLine(productID uuid.UUID, variant valueobject.Variant) *CartItem {
	for _, item := range c.Items {
		if item.ProductID == productID && item.Variant.Matches(variant) {
			return item
		}
	}
	return nil
}
