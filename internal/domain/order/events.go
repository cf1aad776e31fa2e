package order

import (
	"github.com/shopspring/decimal"

	"github.com/shopline/backend/internal/domain/shared"
)

// OrderPlacedEvent fires when a checkout produces a new pending order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	Code  string          `json:"code"`
	Total decimal.Decimal `json:"total"`
}

// NewOrderPlacedEvent creates an OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("order.placed", "Order", o.ID),
		Code:            o.Code,
		Total:           o.Total,
	}
}

// OrderDeliveredEvent fires when an order reaches delivered
type OrderDeliveredEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewOrderDeliveredEvent creates an OrderDeliveredEvent
func NewOrderDeliveredEvent(o *Order) *OrderDeliveredEvent {
	return &OrderDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("order.delivered", "Order", o.ID),
		Code:            o.Code,
	}
}

// OrderCancelledEvent fires when an order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// NewOrderCancelledEvent creates an OrderCancelledEvent
func NewOrderCancelledEvent(o *Order, reason string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("order.cancelled", "Order", o.ID),
		Code:            o.Code,
		Reason:          reason,
	}
}
