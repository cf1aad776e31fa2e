package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for carts
type Repository interface {
	Save(ctx context.Context, cart *Cart) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	DeleteItems(ctx context.Context, cartID uuid.UUID) error
}
