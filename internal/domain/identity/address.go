package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/shared"
)

// Address is a saved shipping address of a user
type Address struct {
	shared.BaseEntity
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiverName string    `gorm:"not null"`
	Phone        string    `gorm:"not null"`
	Line         string    `gorm:"not null"`
	Ward         string
	District     string
	City         string `gorm:"not null"`
	IsDefault    bool   `gorm:"not null;default:false"`
}

// NewAddress creates a shipping address
func NewAddress(userID uuid.UUID, receiverName, phone, line, ward, district, city string) (*Address, error) {
	if strings.TrimSpace(receiverName) == "" {
		return nil, shared.NewDomainError("INVALID_RECEIVER", "Receiver name cannot be empty")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	if strings.TrimSpace(line) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address line cannot be empty")
	}
	if strings.TrimSpace(city) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "City cannot be empty")
	}

	return &Address{
		BaseEntity:   shared.NewBaseEntity(),
		UserID:       userID,
		ReceiverName: strings.TrimSpace(receiverName),
		Phone:        strings.TrimSpace(phone),
		Line:         strings.TrimSpace(line),
		Ward:         strings.TrimSpace(ward),
		District:     strings.TrimSpace(district),
		City:         strings.TrimSpace(city),
	}, nil
}

// Update replaces the address fields
func (a *Address) Update(receiverName, phone, line, ward, district, city string) error {
	updated, err := NewAddress(a.UserID, receiverName, phone, line, ward, district, city)
	if err != nil {
		return err
	}

	a.ReceiverName = updated.ReceiverName
	a.Phone = updated.Phone
	a.Line = updated.Line
	a.Ward = updated.Ward
	a.District = updated.District
	a.City = updated.City
	a.UpdatedAt = time.Now()

	return nil
}

// FullText renders the address as a single shipping line
func (a *Address) FullText() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Line, a.Ward, a.District, a.City} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
