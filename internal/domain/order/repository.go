package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/shared"
)

// Repository defines the persistence contract for orders
type Repository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByCode(ctx context.Context, code string) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Order], error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Order], error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	// HasDelivered reports whether the user has a delivered order
	// containing the product. Gates review creation.
	HasDelivered(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	// MarkItemReviewed flags the product's lines in the user's
	// delivered orders once a review is submitted.
	MarkItemReviewed(ctx context.Context, userID, productID uuid.UUID) error
}
