package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopline/backend/internal/domain/cart"
	"github.com/shopline/backend/internal/domain/catalog"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Color     string    `json:"color" binding:"max=50"`
	Size      string    `json:"size" binding:"max=50"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest sets the quantity of a cart line. Zero removes it.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Image       string          `json:"image,omitempty"`
	Color       string          `json:"color,omitempty"`
	Size        string          `json:"size,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Available   bool            `json:"available"`
}

// CartSummaryResponse totals the valid lines plus a shipping estimate
type CartSummaryResponse struct {
	TotalQuantity int             `json:"total_quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	ShippingFee   decimal.Decimal `json:"shipping_fee"`
	Total         decimal.Decimal `json:"total"`
}

// CartResponse represents the cart in API responses
type CartResponse struct {
	ID            uuid.UUID          `json:"id"`
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int                `json:"total_quantity"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ToCartResponse converts a cart and its product snapshot into a
// response. Products missing from the map render without name/image.
func ToCartResponse(c *cart.Cart, products map[uuid.UUID]*catalog.Product) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		line := CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Color:     item.Variant.Color,
			Size:      item.Variant.Size,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  item.Subtotal(),
		}
		if p, ok := products[item.ProductID]; ok {
			line.ProductName = p.Name
			if len(p.Images) > 0 {
				line.Image = p.Images[0]
			}
			line.Available = p.IsAvailable() && p.CanFulfill(item.Quantity)
		}
		items = append(items, line)
	}

	return CartResponse{
		ID:            c.ID,
		Items:         items,
		TotalQuantity: c.TotalQuantity(),
		Subtotal:      c.Subtotal(),
		UpdatedAt:     c.UpdatedAt,
	}
}
