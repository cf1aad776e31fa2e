package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/shared"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save persists the order with its items and payment
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	db := dbFromContext(ctx, r.db)

	if err := db.Omit("Items", "Payment").Save(o).Error; err != nil {
		return err
	}
	for _, item := range o.Items {
		item.OrderID = o.ID
		if err := db.Save(item).Error; err != nil {
			return err
		}
	}
	if o.Payment != nil {
		o.Payment.OrderID = o.ID
		if err := db.Save(o.Payment).Error; err != nil {
			return err
		}
	}
	return nil
}

// FindByID loads an order with items and payment
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Preload("Payment").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByCode loads an order by its public code
func (r *GormOrderRepository) FindByCode(ctx context.Context, code string) (*order.Order, error) {
	var o order.Order
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Preload("Payment").
		First(&o, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByUser pages a user's orders, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[*order.Order], error) {
	db := dbFromContext(ctx, r.db)

	base := r.applyFilterWithoutPagination(db.Model(&order.Order{}).Where("user_id = ?", userID), filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var orders []*order.Order
	if err := applyPagination(base, filter).
		Preload("Items").
		Preload("Payment").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	return shared.NewPaginated(orders, total, filter.Page, filter.PageSize), nil
}

// FindAll pages all orders for back-office views
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*order.Order], error) {
	db := dbFromContext(ctx, r.db)

	base := r.applyFilterWithoutPagination(db.Model(&order.Order{}), filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var orders []*order.Order
	if err := applyPagination(base, filter).
		Preload("Items").
		Preload("Payment").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	return shared.NewPaginated(orders, total, filter.Page, filter.PageSize), nil
}

// ExistsByCode checks if an order code is taken
func (r *GormOrderRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).
		Model(&order.Order{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasDelivered reports whether the user has a delivered order containing the product
func (r *GormOrderRepository) HasDelivered(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).
		Model(&order.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.product_id = ?",
			userID, order.StatusDelivered, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkItemReviewed flags the product's lines in the user's delivered orders
func (r *GormOrderRepository) MarkItemReviewed(ctx context.Context, userID, productID uuid.UUID) error {
	db := dbFromContext(ctx, r.db)

	delivered := db.Model(&order.Order{}).
		Select("id").
		Where("user_id = ? AND status = ?", userID, order.StatusDelivered)

	return db.Model(&order.OrderItem{}).
		Where("order_id IN (?) AND product_id = ?", delivered, productID).
		Update("reviewed", true).Error
}

// applyFilterWithoutPagination applies search and filters to the query
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		query = query.Where("LOWER(code) LIKE ? OR LOWER(receiver_name) LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "from":
			query = query.Where("created_at >= ?", value)
		case "to":
			query = query.Where("created_at < ?", value)
		}
	}

	return query
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
