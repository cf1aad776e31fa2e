package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/shared"
)

// Repository defines the persistence contract for reviews
type Repository interface {
	Save(ctx context.Context, review *Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*Review, error)
	// FindVisibleByProduct pages the non-hidden reviews of a product
	FindVisibleByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Review], error)
	// FindAll pages all reviews for moderation, hidden included
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Review], error)
	// AverageRating returns the mean rating over non-hidden reviews,
	// zero when the product has none.
	AverageRating(ctx context.Context, productID uuid.UUID) (float64, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
