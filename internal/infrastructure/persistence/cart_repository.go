package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopline/backend/internal/domain/cart"
	"github.com/shopline/backend/internal/domain/shared"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Save persists the cart and its items. Items removed from the
// aggregate are deleted so the stored lines mirror the in-memory ones.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	db := dbFromContext(ctx, r.db)

	if err := db.Omit("Items").Save(c).Error; err != nil {
		return err
	}

	keep := make([]uuid.UUID, 0, len(c.Items))
	for _, item := range c.Items {
		item.CartID = c.ID
		if err := db.Save(item).Error; err != nil {
			return err
		}
		keep = append(keep, item.ID)
	}

	query := db.Where("cart_id = ?", c.ID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(&cart.CartItem{}).Error
}

// FindByUserID loads a user's cart with its items
func (r *GormCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		First(&c, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// DeleteItem removes a single cart line
func (r *GormCartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&cart.CartItem{}, "id = ?", itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteItems removes all lines of a cart
func (r *GormCartRepository) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	return dbFromContext(ctx, r.db).Delete(&cart.CartItem{}, "cart_id = ?", cartID).Error
}

// Ensure GormCartRepository implements cart.Repository
var _ cart.Repository = (*GormCartRepository)(nil)
