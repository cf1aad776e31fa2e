package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopline/backend/internal/domain/shared"
	"github.com/shopline/backend/internal/domain/shared/valueobject"
)

// PaymentMethod identifies how an order is paid
type PaymentMethod string

const (
	PaymentMethodCOD   PaymentMethod = "COD"
	PaymentMethodMomo  PaymentMethod = "MOMO"
	PaymentMethodVNPay PaymentMethod = "VNPAY"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodMomo, PaymentMethodVNPay:
		return true
	}
	return false
}

// PaymentStatus represents the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Payment records the settlement of a single order. TransactionID and
// ProviderPayload hold the gateway reference and raw callback for
// online methods; both stay empty for COD.
type Payment struct {
	shared.BaseEntity
	OrderID         uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Method          PaymentMethod   `gorm:"not null"`
	Status          PaymentStatus   `gorm:"not null;default:pending"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaidAt          *time.Time
	TransactionID   string              `gorm:"index"`
	ProviderPayload valueobject.JSONMap `gorm:"type:jsonb"`
}

// NewPayment creates a pending payment for an order
func NewPayment(orderID uuid.UUID, method PaymentMethod, amount decimal.Decimal) (*Payment, error) {
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be COD, MOMO or VNPAY")
	}
	if amount.LessThan(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount cannot be negative")
	}
	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		Method:     method,
		Status:     PaymentStatusPending,
		Amount:     amount,
	}, nil
}

// MarkPaid settles the payment. Already-paid payments are left
// untouched so delivery can be retried safely.
func (p *Payment) MarkPaid() {
	if p.Status == PaymentStatusPaid {
		return
	}
	now := time.Now()
	p.Status = PaymentStatusPaid
	p.PaidAt = &now
	p.UpdatedAt = now
}

// AttachGatewayResult records the gateway reference and raw callback
// of a settlement attempt
func (p *Payment) AttachGatewayResult(transactionID string, payload valueobject.JSONMap) {
	p.TransactionID = transactionID
	p.ProviderPayload = payload
	p.UpdatedAt = time.Now()
}

// MarkFailed records a failed settlement attempt
func (p *Payment) MarkFailed() error {
	if p.Status == PaymentStatusPaid || p.Status == PaymentStatusRefunded {
		return shared.NewDomainError("INVALID_STATE", "Cannot fail a settled payment")
	}
	p.Status = PaymentStatusFailed
	p.UpdatedAt = time.Now()
	return nil
}

// MarkRefunded refunds a settled payment
func (p *Payment) MarkRefunded() error {
	if p.Status != PaymentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Only paid payments can be refunded")
	}
	p.Status = PaymentStatusRefunded
	p.UpdatedAt = time.Now()
	return nil
}
