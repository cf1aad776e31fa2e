package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopline/backend/internal/domain/order"
)

// CheckoutRequest places an order from the caller's cart. Empty
// ItemIDs consumes the whole cart.
type CheckoutRequest struct {
	AddressID     uuid.UUID   `json:"address_id" binding:"required"`
	ItemIDs       []uuid.UUID `json:"item_ids"`
	PaymentMethod string      `json:"payment_method" binding:"omitempty,oneof=COD MOMO VNPAY"`
	Note          string      `json:"note" binding:"max=1000"`
}

// OrderItemInput describes one line of a manually created order
type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Color     string    `json:"color" binding:"max=50"`
	Size      string    `json:"size" binding:"max=50"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest places an order from explicit items, bypassing
// the cart
type CreateOrderRequest struct {
	AddressID     uuid.UUID        `json:"address_id" binding:"required"`
	Items         []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string           `json:"payment_method" binding:"omitempty,oneof=COD MOMO VNPAY"`
	Note          string           `json:"note" binding:"max=1000"`
}

// CancelOrderRequest carries the cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// UpdateStatusRequest drives the admin status machine
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed shipping delivered cancelled"`
	Reason string `json:"reason" binding:"max=500"`
}

// OrderListFilter represents filter options for order listings
type OrderListFilter struct {
	Status   string     `form:"status" binding:"omitempty,oneof=pending confirmed shipping delivered cancelled"`
	UserID   *uuid.UUID `form:"user_id"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Search   string     `form:"search"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by" binding:"omitempty,oneof=created_at total"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Color       string          `json:"color,omitempty"`
	Size        string          `json:"size,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Reviewed    bool            `json:"reviewed"`
}

// PaymentResponse represents the payment of an order
type PaymentResponse struct {
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	Code            string              `json:"code"`
	UserID          uuid.UUID           `json:"user_id"`
	Status          string              `json:"status"`
	Items           []OrderItemResponse `json:"items"`
	Payment         *PaymentResponse    `json:"payment,omitempty"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	ShippingFee     decimal.Decimal     `json:"shipping_fee"`
	Total           decimal.Decimal     `json:"total"`
	ReceiverName    string              `json:"receiver_name"`
	ReceiverPhone   string              `json:"receiver_phone"`
	ShippingAddress string              `json:"shipping_address"`
	Note            string              `json:"note,omitempty"`
	CancelReason    string              `json:"cancel_reason,omitempty"`
	ConfirmedAt     *time.Time          `json:"confirmed_at,omitempty"`
	ShippedAt       *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Color:       item.Variant.Color,
			Size:        item.Variant.Size,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal(),
			Reviewed:    item.Reviewed,
		})
	}

	response := OrderResponse{
		ID:              o.ID,
		Code:            o.Code,
		UserID:          o.UserID,
		Status:          string(o.Status),
		Items:           items,
		Subtotal:        o.Subtotal,
		ShippingFee:     o.ShippingFee,
		Total:           o.Total,
		ReceiverName:    o.ReceiverName,
		ReceiverPhone:   o.ReceiverPhone,
		ShippingAddress: o.ShippingAddress,
		Note:            o.Note,
		CancelReason:    o.CancelReason,
		ConfirmedAt:     o.ConfirmedAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
		CreatedAt:       o.CreatedAt,
	}
	if o.Payment != nil {
		response.Payment = &PaymentResponse{
			Method:        string(o.Payment.Method),
			Status:        string(o.Payment.Status),
			Amount:        o.Payment.Amount,
			PaidAt:        o.Payment.PaidAt,
			TransactionID: o.Payment.TransactionID,
		}
	}
	return response
}
