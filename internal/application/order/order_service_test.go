package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopline/backend/internal/domain/cart"
	"github.com/shopline/backend/internal/domain/catalog"
	"github.com/shopline/backend/internal/domain/identity"
	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/shared"
	"github.com/shopline/backend/internal/domain/shared/valueobject"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCode(ctx context.Context, code string) (*order.Order, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[*order.Order], error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*order.Order]), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*order.Order], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*order.Order]), args.Error(1)
}

func (m *MockOrderRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) HasDelivered(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) MarkItemReviewed(ctx context.Context, userID, productID uuid.UUID) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

// MockCartRepository is a mock implementation of cart.Repository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*catalog.Product], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) DeductStock(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) RestoreStock(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAddressRepository is a mock implementation of identity.AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) Save(ctx context.Context, address *identity.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Address), args.Error(1)
}

func (m *MockAddressRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*identity.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.Address), args.Error(1)
}

func (m *MockAddressRepository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) Remember(ctx context.Context, key, result string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, result, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// passthroughTx runs the function directly, no transaction
type passthroughTx struct{}

func (passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type orderFixture struct {
	orderRepo   *MockOrderRepository
	cartRepo    *MockCartRepository
	productRepo *MockProductRepository
	addressRepo *MockAddressRepository
	idempotency *MockIdempotencyStore
	service     *OrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orderRepo:   new(MockOrderRepository),
		cartRepo:    new(MockCartRepository),
		productRepo: new(MockProductRepository),
		addressRepo: new(MockAddressRepository),
		idempotency: new(MockIdempotencyStore),
	}
	f.service = NewOrderService(f.orderRepo, f.cartRepo, f.productRepo, f.addressRepo, passthroughTx{}, f.idempotency, 0)
	return f
}

func sellableProduct(t *testing.T, name string, price int64, quantity int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, catalog.Slugify(name), decimal.NewFromInt(price), quantity)
	require.NoError(t, err)
	return p
}

func savedAddress(t *testing.T, userID uuid.UUID) *identity.Address {
	t.Helper()
	a, err := identity.NewAddress(userID, "Nguyen Van A", "0901234567", "12 Ly Thuong Kiet", "Cua Nam", "Hoan Kiem", "Ha Noi")
	require.NoError(t, err)
	return a
}

func TestOrderService_Checkout(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()
	address := savedAddress(t, userID)

	shirt := sellableProduct(t, "Ao so mi", 100000, 10)
	cap := sellableProduct(t, "Mu luoi trai", 50000, 5)

	c := cart.NewCart(userID)
	_, err := c.AddItem(shirt.ID, valueobject.Variant{Color: "white", Size: "L"}, 2, shirt.Price)
	require.NoError(t, err)
	_, err = c.AddItem(cap.ID, valueobject.Variant{}, 1, cap.Price)
	require.NoError(t, err)

	f.addressRepo.On("FindByID", mock.Anything, address.ID).Return(address, nil)
	f.cartRepo.On("FindByUserID", mock.Anything, userID).Return(c, nil)
	f.productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*catalog.Product{shirt, cap}, nil)
	f.orderRepo.On("ExistsByCode", mock.Anything, mock.Anything).Return(false, nil)
	f.productRepo.On("DeductStock", mock.Anything, shirt.ID, 2).Return(nil)
	f.productRepo.On("DeductStock", mock.Anything, cap.ID, 1).Return(nil)
	f.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	f.cartRepo.On("Save", mock.Anything, c).Return(nil)

	resp, err := f.service.Checkout(context.Background(), userID, "", CheckoutRequest{AddressID: address.ID})
	require.NoError(t, err)

	assert.Regexp(t, `^ORD\d{14}$`, resp.Code)
	assert.Equal(t, "pending", resp.Status)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(250000)))
	assert.True(t, resp.ShippingFee.Equal(decimal.NewFromInt(30000)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(280000)))
	assert.Equal(t, "Nguyen Van A", resp.ReceiverName)
	assert.Equal(t, "12 Ly Thuong Kiet, Cua Nam, Hoan Kiem, Ha Noi", resp.ShippingAddress)
	require.NotNil(t, resp.Payment)
	assert.Equal(t, "COD", resp.Payment.Method)
	assert.Equal(t, "pending", resp.Payment.Status)

	// the whole cart was consumed
	assert.True(t, c.IsEmpty())
	f.productRepo.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
}

func TestOrderService_Checkout_FreeShippingAboveThreshold(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()
	address := savedAddress(t, userID)

	phone := sellableProduct(t, "Dien thoai", 3000000, 10)
	c := cart.NewCart(userID)
	_, err := c.AddItem(phone.ID, valueobject.Variant{}, 2, phone.Price)
	require.NoError(t, err)

	f.addressRepo.On("FindByID", mock.Anything, address.ID).Return(address, nil)
	f.cartRepo.On("FindByUserID", mock.Anything, userID).Return(c, nil)
	f.productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*catalog.Product{phone}, nil)
	f.orderRepo.On("ExistsByCode", mock.Anything, mock.Anything).Return(false, nil)
	f.productRepo.On("DeductStock", mock.Anything, phone.ID, 2).Return(nil)
	f.orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.cartRepo.On("Save", mock.Anything, c).Return(nil)

	resp, err := f.service.Checkout(context.Background(), userID, "", CheckoutRequest{AddressID: address.ID})
	require.NoError(t, err)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(6000000)))
	assert.True(t, resp.ShippingFee.IsZero())
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(6000000)))
}

func TestOrderService_Checkout_SelectedLinesOnly(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()
	address := savedAddress(t, userID)

	wanted := sellableProduct(t, "Wanted", 100000, 10)
	kept := sellableProduct(t, "Kept", 20000, 10)

	c := cart.NewCart(userID)
	wantedLine, err := c.AddItem(wanted.ID, valueobject.Variant{}, 1, wanted.Price)
	require.NoError(t, err)
	_, err = c.AddItem(kept.ID, valueobject.Variant{}, 1, kept.Price)
	require.NoError(t, err)

	f.addressRepo.On("FindByID", mock.Anything, address.ID).Return(address, nil)
	f.cartRepo.On("FindByUserID", mock.Anything, userID).Return(c, nil)
	f.productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*catalog.Product{wanted}, nil)
	f.orderRepo.On("ExistsByCode", mock.Anything, mock.Anything).Return(false, nil)
	f.productRepo.On("DeductStock", mock.Anything, wanted.ID, 1).Return(nil)
	f.orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.cartRepo.On("Save", mock.Anything, c).Return(nil)

	resp, err := f.service.Checkout(context.Background(), userID, "", CheckoutRequest{
		AddressID: address.ID,
		ItemIDs:   []uuid.UUID{wantedLine.ID},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, wanted.ID, resp.Items[0].ProductID)

	// the unselected line stays in the cart
	require.Len(t, c.Items, 1)
	assert.Equal(t, kept.ID, c.Items[0].ProductID)
}

func TestOrderService_Checkout_UnknownLineSelected(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()
	address := savedAddress(t, userID)

	product := sellableProduct(t, "Anything", 1000, 10)
	c := cart.NewCart(userID)
	_, err := c.AddItem(product.ID, valueobject.Variant{}, 1, product.Price)
	require.NoError(t, err)

	f.addressRepo.On("FindByID", mock.Anything, address.ID).Return(address, nil)
	f.cartRepo.On("FindByUserID", mock.Anything, userID).Return(c, nil)

	_, err = f.service.Checkout(context.Background(), userID, "", CheckoutRequest{
		AddressID: address.ID,
		ItemIDs:   []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()
	address := savedAddress(t, userID)

	f.addressRepo.On("FindByID", mock.Anything, address.ID).Return(address, nil)
	f.cartRepo.On("FindByUserID", mock.Anything, userID).Return(nil, shared.ErrNotFound)

	_, err := f.service.Checkout(context.Background(), userID, "", CheckoutRequest{AddressID: address.ID})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_CART", domainErr.Code)
}

func TestOrderService_Checkout_ForeignAddress(t *testing.T) {
	f := newOrderFixture()
	address := savedAddress(t, uuid.New())
	f.addressRepo.On("FindByID", mock.Anything, address.ID).Return(address, nil)

	_, err := f.service.Checkout(context.Background(), uuid.New(), "", CheckoutRequest{AddressID: address.ID})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.cartRepo.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
}

func TestOrderService_Checkout_UnavailableProduct(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()
	address := savedAddress(t, userID)

	product := sellableProduct(t, "Gone", 1000, 10)
	c := cart.NewCart(userID)
	_, err := c.AddItem(product.ID, valueobject.Variant{}, 1, product.Price)
	require.NoError(t, err)
	product.Deactivate()

	f.addressRepo.On("FindByID", mock.Anything, address.ID).Return(address, nil)
	f.cartRepo.On("FindByUserID", mock.Anything, userID).Return(c, nil)
	f.productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*catalog.Product{product}, nil)

	_, err = f.service.Checkout(context.Background(), userID, "", CheckoutRequest{AddressID: address.ID})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_UNAVAILABLE", domainErr.Code)
	f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_Checkout_InsufficientStock(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()
	address := savedAddress(t, userID)

	scarce := sellableProduct(t, "Scarce", 1000, 1)
	c := cart.NewCart(userID)
	_, err := c.AddItem(scarce.ID, valueobject.Variant{}, 3, scarce.Price)
	require.NoError(t, err)

	f.addressRepo.On("FindByID", mock.Anything, address.ID).Return(address, nil)
	f.cartRepo.On("FindByUserID", mock.Anything, userID).Return(c, nil)
	f.productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*catalog.Product{scarce}, nil)

	_, err = f.service.Checkout(context.Background(), userID, "", CheckoutRequest{AddressID: address.ID})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.EqualError(t, err, "Only 1 left in stock")
}

func TestOrderService_Checkout_DeductFailureAbortsOrder(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()
	address := savedAddress(t, userID)

	product := sellableProduct(t, "Contested", 1000, 2)
	c := cart.NewCart(userID)
	_, err := c.AddItem(product.ID, valueobject.Variant{}, 2, product.Price)
	require.NoError(t, err)

	f.addressRepo.On("FindByID", mock.Anything, address.ID).Return(address, nil)
	f.cartRepo.On("FindByUserID", mock.Anything, userID).Return(c, nil)
	f.productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*catalog.Product{product}, nil)
	f.orderRepo.On("ExistsByCode", mock.Anything, mock.Anything).Return(false, nil)
	// a concurrent checkout won the stock between validation and deduction
	f.productRepo.On("DeductStock", mock.Anything, product.ID, 2).Return(shared.ErrInsufficientStock)

	_, err = f.service.Checkout(context.Background(), userID, "", CheckoutRequest{AddressID: address.ID})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_Checkout_IdempotentReplay(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()

	existing, err := order.NewOrder("ORD20250901123456", userID, []order.OrderLine{{
		ProductID:   uuid.New(),
		ProductName: "Already bought",
		Quantity:    1,
		Price:       decimal.NewFromInt(100000),
	}}, order.PaymentMethodCOD, "Nguyen Van A", "0901234567", "12 Ly Thuong Kiet, Ha Noi", "")
	require.NoError(t, err)

	f.idempotency.On("Lookup", mock.Anything, "key-1").Return(existing.Code, true, nil)
	f.orderRepo.On("FindByCode", mock.Anything, existing.Code).Return(existing, nil)

	resp, err := f.service.Checkout(context.Background(), userID, "key-1", CheckoutRequest{AddressID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, existing.Code, resp.Code)
	f.productRepo.AssertNotCalled(t, "DeductStock", mock.Anything, mock.Anything, mock.Anything)
	f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_Checkout_RemembersResult(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()
	address := savedAddress(t, userID)

	product := sellableProduct(t, "Fresh", 100000, 10)
	c := cart.NewCart(userID)
	_, err := c.AddItem(product.ID, valueobject.Variant{}, 1, product.Price)
	require.NoError(t, err)

	f.idempotency.On("Lookup", mock.Anything, "key-2").Return("", false, nil)
	f.addressRepo.On("FindByID", mock.Anything, address.ID).Return(address, nil)
	f.cartRepo.On("FindByUserID", mock.Anything, userID).Return(c, nil)
	f.productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*catalog.Product{product}, nil)
	f.orderRepo.On("ExistsByCode", mock.Anything, mock.Anything).Return(false, nil)
	f.productRepo.On("DeductStock", mock.Anything, product.ID, 1).Return(nil)
	f.orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.cartRepo.On("Save", mock.Anything, c).Return(nil)
	f.idempotency.On("Remember", mock.Anything, "key-2", mock.Anything, mock.Anything).Return(true, nil)

	resp, err := f.service.Checkout(context.Background(), userID, "key-2", CheckoutRequest{AddressID: address.ID})
	require.NoError(t, err)
	f.idempotency.AssertCalled(t, "Remember", mock.Anything, "key-2", resp.Code, mock.Anything)
}

func TestOrderService_Checkout_CodeGenerationExhausted(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()
	address := savedAddress(t, userID)

	product := sellableProduct(t, "Popular", 1000, 10)
	c := cart.NewCart(userID)
	_, err := c.AddItem(product.ID, valueobject.Variant{}, 1, product.Price)
	require.NoError(t, err)

	f.addressRepo.On("FindByID", mock.Anything, address.ID).Return(address, nil)
	f.cartRepo.On("FindByUserID", mock.Anything, userID).Return(c, nil)
	f.productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*catalog.Product{product}, nil)
	f.orderRepo.On("ExistsByCode", mock.Anything, mock.Anything).Return(true, nil)

	_, err = f.service.Checkout(context.Background(), userID, "", CheckoutRequest{AddressID: address.ID})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CODE_GENERATION_FAILED", domainErr.Code)
	f.orderRepo.AssertNumberOfCalls(t, "ExistsByCode", 10)
}

func TestOrderService_Create_SkipsCart(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()
	address := savedAddress(t, userID)

	product := sellableProduct(t, "Direct", 150000, 10)
	f.addressRepo.On("FindByID", mock.Anything, address.ID).Return(address, nil)
	f.productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*catalog.Product{product}, nil)
	f.orderRepo.On("ExistsByCode", mock.Anything, mock.Anything).Return(false, nil)
	f.productRepo.On("DeductStock", mock.Anything, product.ID, 2).Return(nil)
	f.orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.service.Create(context.Background(), userID, CreateOrderRequest{
		AddressID:     address.ID,
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 2, Color: "red"}},
		PaymentMethod: "MOMO",
	})
	require.NoError(t, err)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(300000)))
	assert.Equal(t, "MOMO", resp.Payment.Method)
	f.cartRepo.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
	f.cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func placedOrder(t *testing.T, userID uuid.UUID, productID uuid.UUID, quantity int) *order.Order {
	t.Helper()
	o, err := order.NewOrder("ORD20250901654321", userID, []order.OrderLine{{
		ProductID:   productID,
		ProductName: "Something",
		Quantity:    quantity,
		Price:       decimal.NewFromInt(200000),
	}}, order.PaymentMethodCOD, "Nguyen Van A", "0901234567", "12 Ly Thuong Kiet, Ha Noi", "")
	require.NoError(t, err)
	return o
}

func TestOrderService_Cancel_RestoresStock(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()
	productID := uuid.New()
	o := placedOrder(t, userID, productID, 3)

	f.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	f.productRepo.On("RestoreStock", mock.Anything, productID, 3).Return(nil)
	f.orderRepo.On("Save", mock.Anything, o).Return(nil)

	resp, err := f.service.Cancel(context.Background(), userID, o.ID, CancelOrderRequest{Reason: "changed my mind"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "changed my mind", resp.CancelReason)
	assert.NotNil(t, resp.CancelledAt)
	f.productRepo.AssertExpectations(t)
}

func TestOrderService_Cancel_RefundsSettledPayment(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()
	o := placedOrder(t, userID, uuid.New(), 1)
	require.NoError(t, o.Confirm())
	o.Payment.MarkPaid()

	f.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	f.productRepo.On("RestoreStock", mock.Anything, mock.Anything, 1).Return(nil)
	f.orderRepo.On("Save", mock.Anything, o).Return(nil)

	resp, err := f.service.Cancel(context.Background(), userID, o.ID, CancelOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, "refunded", resp.Payment.Status)
}

func TestOrderService_Cancel_RejectedOnceShipping(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()
	o := placedOrder(t, userID, uuid.New(), 1)
	require.NoError(t, o.Confirm())
	require.NoError(t, o.Ship())

	f.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	_, err := f.service.Cancel(context.Background(), userID, o.ID, CancelOrderRequest{})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE_TRANSITION", domainErr.Code)
	f.productRepo.AssertNotCalled(t, "RestoreStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Cancel_NotOwner(t *testing.T) {
	f := newOrderFixture()
	o := placedOrder(t, uuid.New(), uuid.New(), 1)
	f.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	_, err := f.service.Cancel(context.Background(), uuid.New(), o.ID, CancelOrderRequest{})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	f := newOrderFixture()
	o := placedOrder(t, uuid.New(), uuid.New(), 1)

	f.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	f.orderRepo.On("Save", mock.Anything, o).Return(nil)

	resp, err := f.service.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.NotNil(t, resp.ConfirmedAt)

	resp, err = f.service.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "shipping"})
	require.NoError(t, err)
	assert.Equal(t, "shipping", resp.Status)

	resp, err = f.service.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "delivered"})
	require.NoError(t, err)
	assert.Equal(t, "delivered", resp.Status)
	assert.Equal(t, "paid", resp.Payment.Status)
}

func TestOrderService_UpdateStatus_SkippingAStepFails(t *testing.T) {
	f := newOrderFixture()
	o := placedOrder(t, uuid.New(), uuid.New(), 1)
	f.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	_, err := f.service.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "delivered"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE_TRANSITION", domainErr.Code)
	f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatus_AdminCancelsFromShipping(t *testing.T) {
	f := newOrderFixture()
	productID := uuid.New()
	o := placedOrder(t, uuid.New(), productID, 2)
	require.NoError(t, o.Confirm())
	require.NoError(t, o.Ship())

	f.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	f.productRepo.On("RestoreStock", mock.Anything, productID, 2).Return(nil)
	f.orderRepo.On("Save", mock.Anything, o).Return(nil)

	resp, err := f.service.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "cancelled", Reason: "lost in transit"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	f.productRepo.AssertExpectations(t)
}

func TestOrderService_Get_HidesForeignOrders(t *testing.T) {
	f := newOrderFixture()
	o := placedOrder(t, uuid.New(), uuid.New(), 1)
	f.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	_, err := f.service.Get(context.Background(), uuid.New(), false, o.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	resp, err := f.service.Get(context.Background(), uuid.New(), true, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.Code, resp.Code)
}
