package order

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopline/backend/internal/domain/shared"
	"github.com/shopline/backend/internal/domain/shared/valueobject"
)

// OrderItem is a line of an order. Product name and price are frozen
// at checkout time so later catalog edits do not rewrite history.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	ProductName string              `gorm:"not null"`
	Variant     valueobject.Variant `gorm:"type:jsonb"`
	Quantity    int                 `gorm:"not null"`
	Price       decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Reviewed    bool                `gorm:"not null;default:false"`
}

// Subtotal returns price times quantity for the line
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the checkout aggregate root
type Order struct {
	shared.BaseAggregateRoot
	Code            string          `gorm:"uniqueIndex;not null"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status          Status          `gorm:"not null;default:pending;index"`
	Items           []*OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment         *Payment        `gorm:"foreignKey:OrderID"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ShippingFee     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ReceiverName    string          `gorm:"not null"`
	ReceiverPhone   string          `gorm:"not null"`
	ShippingAddress string          `gorm:"not null"`
	Note            string
	ConfirmedAt     *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string
}

// OrderLine describes one line handed to NewOrder by the checkout flow
type OrderLine struct {
	ProductID   uuid.UUID
	ProductName string
	Variant     valueobject.Variant
	Quantity    int
	Price       decimal.Decimal
}

// NewOrder builds a pending order from checkout lines. The subtotal,
// shipping fee and total are computed here and never recomputed.
func NewOrder(code string, userID uuid.UUID, lines []OrderLine, method PaymentMethod, receiverName, receiverPhone, shippingAddress, note string) (*Order, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Order code cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	if receiverName == "" || receiverPhone == "" || shippingAddress == "" {
		return nil, shared.NewDomainError("INVALID_RECEIVER", "Receiver name, phone and address are required")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		UserID:            userID,
		Status:            StatusPending,
		ReceiverName:      receiverName,
		ReceiverPhone:     receiverPhone,
		ShippingAddress:   shippingAddress,
		Note:              note,
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Order line quantity must be positive")
		}
		item := &OrderItem{
			BaseEntity:  shared.NewBaseEntity(),
			OrderID:     o.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Variant:     line.Variant,
			Quantity:    line.Quantity,
			Price:       line.Price,
		}
		o.Items = append(o.Items, item)
		subtotal = subtotal.Add(item.Subtotal())
	}

	o.Subtotal = subtotal
	o.ShippingFee = CalculateShippingFee(subtotal)
	o.Total = subtotal.Add(o.ShippingFee)

	payment, err := NewPayment(o.ID, method, o.Total)
	if err != nil {
		return nil, err
	}
	o.Payment = payment

	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// Confirm moves the order from pending to confirmed
func (o *Order) Confirm() error {
	if err := o.transition(StatusConfirmed); err != nil {
		return err
	}
	now := time.Now()
	o.ConfirmedAt = &now
	return nil
}

// Ship moves the order from confirmed to shipping
func (o *Order) Ship() error {
	if err := o.transition(StatusShipping); err != nil {
		return err
	}
	now := time.Now()
	o.ShippedAt = &now
	return nil
}

// Deliver completes the order. Delivery settles the payment.
func (o *Order) Deliver() error {
	if err := o.transition(StatusDelivered); err != nil {
		return err
	}
	now := time.Now()
	o.DeliveredAt = &now
	if o.Payment != nil {
		o.Payment.MarkPaid()
	}
	o.AddDomainEvent(NewOrderDeliveredEvent(o))
	return nil
}

// Cancel aborts the order from any non-terminal status. The caller
// restores stock after a successful cancel.
func (o *Order) Cancel(reason string) error {
	if err := o.transition(StatusCancelled); err != nil {
		return err
	}
	now := time.Now()
	o.CancelledAt = &now
	o.CancelReason = reason
	o.AddDomainEvent(NewOrderCancelledEvent(o, reason))
	return nil
}

// ContainsProduct reports whether the order includes the product
func (o *Order) ContainsProduct(productID uuid.UUID) bool {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

func (o *Order) transition(target Status) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// GenerateOrderCode builds a candidate order code, ORD + date + six
// random digits. Uniqueness is the caller's problem.
func GenerateOrderCode(now time.Time) string {
	return fmt.Sprintf("ORD%s%06d", now.Format("20060102"), rand.Intn(1000000))
}
