package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/cart"
	"github.com/shopline/backend/internal/domain/catalog"
	"github.com/shopline/backend/internal/domain/identity"
	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/shared"
	"github.com/shopline/backend/internal/domain/shared/valueobject"
	"github.com/shopline/backend/internal/infrastructure/logger"
)

// maxCodeAttempts bounds the order code generation retry loop.
// Exhaustion fails the checkout.
const maxCodeAttempts = 10

// OrderService handles checkout and order lifecycle operations
type OrderService struct {
	orderRepo   order.Repository
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
	addressRepo identity.AddressRepository
	tx          shared.TransactionManager
	idempotency shared.IdempotencyStore
	idemTTL     time.Duration
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.Repository,
	cartRepo cart.Repository,
	productRepo catalog.ProductRepository,
	addressRepo identity.AddressRepository,
	tx shared.TransactionManager,
	idempotency shared.IdempotencyStore,
	idemTTL time.Duration,
) *OrderService {
	if idemTTL <= 0 {
		idemTTL = shared.DefaultIdempotencyConfig().TTL
	}
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		tx:          tx,
		idempotency: idempotency,
		idemTTL:     idemTTL,
	}
}

// Checkout places an order from the user's cart. The consumed lines
// are drained from the cart, stock is deducted and everything commits
// in one transaction. A replayed idempotency key returns the original
// order instead of placing a second one.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, idempotencyKey string, req CheckoutRequest) (*OrderResponse, error) {
	if replay, err := s.replayed(ctx, idempotencyKey); replay != nil || err != nil {
		return replay, err
	}

	receiverName, receiverPhone, shippingAddress, err := s.resolveAddress(ctx, userID, req.AddressID)
	if err != nil {
		return nil, err
	}

	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
		}
		return nil, err
	}

	selected, err := selectLines(c, req.ItemIDs)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
	}

	lines, err := s.buildLines(ctx, selected)
	if err != nil {
		return nil, err
	}

	o, err := s.newOrder(ctx, userID, lines, req.PaymentMethod, receiverName, receiverPhone, shippingAddress, req.Note)
	if err != nil {
		return nil, err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		for _, line := range lines {
			if err := s.productRepo.DeductStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		for _, item := range selected {
			if err := c.RemoveItem(item.ID); err != nil {
				return err
			}
		}
		return s.cartRepo.Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	s.remember(ctx, idempotencyKey, o.Code)

	response := ToOrderResponse(o)
	return &response, nil
}

// Create places an order from explicit items. The cart is untouched.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	receiverName, receiverPhone, shippingAddress, err := s.resolveAddress(ctx, userID, req.AddressID)
	if err != nil {
		return nil, err
	}

	inputs := make([]lineInput, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, lineInput{
			productID: item.ProductID,
			variant:   valueobject.Variant{Color: item.Color, Size: item.Size},
			quantity:  item.Quantity,
		})
	}

	lines, err := s.buildLinesFromInputs(ctx, inputs)
	if err != nil {
		return nil, err
	}

	o, err := s.newOrder(ctx, userID, lines, req.PaymentMethod, receiverName, receiverPhone, shippingAddress, req.Note)
	if err != nil {
		return nil, err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		for _, line := range lines {
			if err := s.productRepo.DeductStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		return s.orderRepo.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// Get loads an order. Non-admin callers only see their own orders.
func (s *OrderService) Get(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != requesterID {
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListMine pages the caller's own orders, newest first
func (s *OrderService) ListMine(ctx context.Context, userID uuid.UUID, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	page, err := s.orderRepo.FindByUser(ctx, userID, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return mapPage(page), nil
}

// ListAll pages every order for back-office views
func (s *OrderService) ListAll(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	domainFilter := toDomainFilter(filter)
	if filter.UserID != nil {
		domainFilter.Filters["user_id"] = *filter.UserID
	}
	page, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return mapPage(page), nil
}

// Cancel aborts the caller's own order. Customers may only cancel
// while the order is pending or confirmed; stock is restored and a
// settled payment refunded.
func (s *OrderService) Cancel(ctx context.Context, userID, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.ErrNotFound
	}
	if o.Status != order.StatusPending && o.Status != order.StatusConfirmed {
		return nil, shared.NewDomainError("INVALID_STATE_TRANSITION", "Order can only be cancelled while pending or confirmed")
	}

	if err := s.cancel(ctx, o, req.Reason); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// UpdateStatus drives the status machine from the back office
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch order.Status(req.Status) {
	case order.StatusConfirmed:
		if err := o.Confirm(); err != nil {
			return nil, err
		}
	case order.StatusShipping:
		if err := o.Ship(); err != nil {
			return nil, err
		}
	case order.StatusDelivered:
		if err := o.Deliver(); err != nil {
			return nil, err
		}
	case order.StatusCancelled:
		if err := s.cancel(ctx, o, req.Reason); err != nil {
			return nil, err
		}
		response := ToOrderResponse(o)
		return &response, nil
	default:
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// cancel transitions the order, restores stock and refunds a settled
// payment, all in one transaction
func (s *OrderService) cancel(ctx context.Context, o *order.Order, reason string) error {
	if err := o.Cancel(reason); err != nil {
		return err
	}
	if o.Payment != nil && o.Payment.Status == order.PaymentStatusPaid {
		if err := o.Payment.MarkRefunded(); err != nil {
			return err
		}
	}

	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		for _, item := range o.Items {
			if err := s.productRepo.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return s.orderRepo.Save(ctx, o)
	})
}

type lineInput struct {
	productID uuid.UUID
	variant   valueobject.Variant
	quantity  int
}

// buildLines validates cart lines against the live catalog and prices
// them at the product's current price
func (s *OrderService) buildLines(ctx context.Context, items []*cart.CartItem) ([]order.OrderLine, error) {
	inputs := make([]lineInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, lineInput{
			productID: item.ProductID,
			variant:   item.Variant,
			quantity:  item.Quantity,
		})
	}
	return s.buildLinesFromInputs(ctx, inputs)
}

func (s *OrderService) buildLinesFromInputs(ctx context.Context, inputs []lineInput) ([]order.OrderLine, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, input := range inputs {
		ids = append(ids, input.productID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]order.OrderLine, 0, len(inputs))
	for _, input := range inputs {
		product, ok := byID[input.productID]
		if !ok || !product.IsAvailable() {
			return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "A product in the order is no longer available")
		}
		if !product.CanFulfill(input.quantity) {
			return nil, product.InsufficientStock()
		}
		lines = append(lines, order.OrderLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Variant:     input.variant,
			Quantity:    input.quantity,
			Price:       product.Price,
		})
	}
	return lines, nil
}

// newOrder builds the pending order under a fresh unique code
func (s *OrderService) newOrder(ctx context.Context, userID uuid.UUID, lines []order.OrderLine, method, receiverName, receiverPhone, shippingAddress, note string) (*order.Order, error) {
	paymentMethod := order.PaymentMethod(method)
	if method == "" {
		paymentMethod = order.PaymentMethodCOD
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}
	return order.NewOrder(code, userID, lines, paymentMethod, receiverName, receiverPhone, shippingAddress, note)
}

func (s *OrderService) uniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := order.GenerateOrderCode(time.Now())
		exists, err := s.orderRepo.ExistsByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", shared.NewDomainError("CODE_GENERATION_FAILED", "Could not generate a unique order code")
}

func (s *OrderService) resolveAddress(ctx context.Context, userID, addressID uuid.UUID) (name, phone, text string, err error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return "", "", "", err
	}
	if address.UserID != userID {
		return "", "", "", shared.ErrNotFound
	}
	return address.ReceiverName, address.Phone, address.FullText(), nil
}

// replayed answers a retried checkout from the idempotency store
func (s *OrderService) replayed(ctx context.Context, key string) (*OrderResponse, error) {
	if key == "" || s.idempotency == nil {
		return nil, nil
	}
	code, found, err := s.idempotency.Lookup(ctx, key)
	if err != nil || !found {
		return nil, nil
	}
	o, err := s.orderRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, nil
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// remember records the checkout result for replay. Best effort; the
// order is already committed.
func (s *OrderService) remember(ctx context.Context, key, code string) {
	if key == "" || s.idempotency == nil {
		return
	}
	if _, err := s.idempotency.Remember(ctx, key, code, s.idemTTL); err != nil {
		logger.L(ctx).Warn("failed to store checkout idempotency key")
	}
}

// selectLines picks the cart lines named by ids, or every line when
// ids is empty
func selectLines(c *cart.Cart, ids []uuid.UUID) ([]*cart.CartItem, error) {
	if len(ids) == 0 {
		return append([]*cart.CartItem(nil), c.Items...), nil
	}

	byID := make(map[uuid.UUID]*cart.CartItem, len(c.Items))
	for _, item := range c.Items {
		byID[item.ID] = item
	}

	selected := make([]*cart.CartItem, 0, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return nil, shared.ErrNotFound
		}
		selected = append(selected, item)
	}
	return selected, nil
}

func toDomainFilter(filter OrderListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.From != nil {
		domainFilter.Filters["from"] = *filter.From
	}
	if filter.To != nil {
		// inclusive day bound
		domainFilter.Filters["to"] = filter.To.Add(24 * time.Hour)
	}
	return domainFilter
}

func mapPage(page *shared.Paginated[*order.Order]) *shared.Paginated[OrderResponse] {
	items := make([]OrderResponse, 0, len(page.Items))
	for _, o := range page.Items {
		items = append(items, ToOrderResponse(o))
	}
	return &shared.Paginated[OrderResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
