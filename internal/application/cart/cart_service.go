package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopline/backend/internal/domain/cart"
	"github.com/shopline/backend/internal/domain/catalog"
	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/shared"
	"github.com/shopline/backend/internal/domain/shared/valueobject"
)

// CartService handles shopping cart operations
type CartService struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.Repository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Get loads the user's cart. Lines whose product has since been
// deleted or deactivated are pruned before the cart is returned.
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, pruned, err := s.pruneDeadLines(ctx, c)
	if err != nil {
		return nil, err
	}
	if pruned {
		if err := s.cartRepo.Save(ctx, c); err != nil {
			return nil, err
		}
	}

	response := ToCartResponse(c, products)
	return &response, nil
}

// AddItem puts a product into the user's cart
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable() {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available for purchase")
	}

	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	// stock must cover the merged line, not just the added quantity
	variant := valueobject.Variant{Color: req.Color, Size: req.Size}
	merged := req.Quantity
	for _, item := range c.Items {
		if item.ProductID == product.ID && item.Variant.Matches(variant) {
			merged += item.Quantity
		}
	}
	if !product.CanFulfill(merged) {
		return nil, product.InsufficientStock()
	}

	if _, err := c.AddItem(product.ID, variant, req.Quantity, product.Price); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.respond(ctx, c)
}

// UpdateItem sets the quantity of a cart line. Zero removes the line.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Quantity > 0 {
		if err := s.checkLineStock(ctx, c, itemID, req.Quantity); err != nil {
			return nil, err
		}
	}
	if err := c.UpdateItemQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.respond(ctx, c)
}

// RemoveItem deletes a line from the user's cart
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := c.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.respond(ctx, c)
}

// Clear drops every line from the user's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	c.Clear()
	return s.cartRepo.Save(ctx, c)
}

// Summary totals the valid cart lines and estimates shipping
func (s *CartService) Summary(ctx context.Context, userID uuid.UUID) (*CartSummaryResponse, error) {
	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.pruneDeadLines(ctx, c); err != nil {
		return nil, err
	}

	summary := &CartSummaryResponse{
		TotalQuantity: c.TotalQuantity(),
		Subtotal:      c.Subtotal(),
		ShippingFee:   decimal.Zero,
		Total:         decimal.Zero,
	}
	if !c.IsEmpty() {
		summary.ShippingFee = order.CalculateShippingFee(summary.Subtotal)
		summary.Total = summary.Subtotal.Add(summary.ShippingFee)
	}
	return summary, nil
}

func (s *CartService) checkLineStock(ctx context.Context, c *cart.Cart, itemID uuid.UUID, quantity int) error {
	for _, item := range c.Items {
		if item.ID != itemID {
			continue
		}
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if !product.CanFulfill(quantity) {
			return product.InsufficientStock()
		}
		return nil
	}
	return shared.ErrNotFound
}

func (s *CartService) loadOrCreate(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if errors.Is(err, shared.ErrNotFound) {
		return cart.NewCart(userID), nil
	}
	return nil, err
}

// pruneDeadLines drops lines whose product is gone or unavailable and
// returns the product snapshot for the surviving lines
func (s *CartService) pruneDeadLines(ctx context.Context, c *cart.Cart) (map[uuid.UUID]*catalog.Product, bool, error) {
	if c.IsEmpty() {
		return nil, false, nil
	}

	ids := make([]uuid.UUID, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, false, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for _, p := range products {
		if p.IsAvailable() {
			byID[p.ID] = p
		}
	}

	pruned := false
	for _, item := range append([]*cart.CartItem(nil), c.Items...) {
		if _, ok := byID[item.ProductID]; !ok {
			if err := c.RemoveItem(item.ID); err == nil {
				pruned = true
			}
		}
	}

	return byID, pruned, nil
}

func (s *CartService) respond(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	products, _, err := s.pruneDeadLines(ctx, c)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(c, products)
	return &response, nil
}
