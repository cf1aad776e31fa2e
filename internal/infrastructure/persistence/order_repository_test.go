package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/shared"
	"github.com/shopline/backend/internal/domain/shared/valueobject"
)

func mustOrder(t *testing.T, code string, userID uuid.UUID, lines []order.OrderLine) *order.Order {
	t.Helper()
	o, err := order.NewOrder(code, userID, lines, order.PaymentMethodCOD,
		"Nguyen Van A", "0901234567", "12 Ly Thuong Kiet, Hanoi", "")
	require.NoError(t, err)
	return o
}

func someLines(productID uuid.UUID) []order.OrderLine {
	return []order.OrderLine{
		{
			ProductID:   productID,
			ProductName: "Ao thun",
			Variant:     valueobject.Variant{Color: "black", Size: "M"},
			Quantity:    2,
			Price:       decimal.NewFromInt(150000),
		},
	}
}

func TestGormOrderRepository_SaveAndFind(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	o := mustOrder(t, "ORD20250901000001", userID, someLines(uuid.New()))
	require.NoError(t, repo.Save(ctx, o))

	byID, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, byID.Status)
	require.Len(t, byID.Items, 1)
	assert.Equal(t, "Ao thun", byID.Items[0].ProductName)
	assert.Equal(t, "black", byID.Items[0].Variant.Color)
	require.NotNil(t, byID.Payment)
	assert.Equal(t, order.PaymentStatusPending, byID.Payment.Status)
	assert.True(t, byID.Subtotal.Equal(decimal.NewFromInt(300000)))
	assert.True(t, byID.Total.Equal(decimal.NewFromInt(330000)))

	byCode, err := repo.FindByCode(ctx, "ORD20250901000001")
	require.NoError(t, err)
	assert.Equal(t, o.ID, byCode.ID)

	_, err = repo.FindByCode(ctx, "ORD00000000000000")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_SavePersistsStatusChanges(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))
	ctx := context.Background()

	o := mustOrder(t, "ORD20250901000002", uuid.New(), someLines(uuid.New()))
	require.NoError(t, repo.Save(ctx, o))

	require.NoError(t, o.Confirm())
	require.NoError(t, o.Ship())
	require.NoError(t, o.Deliver())
	require.NoError(t, repo.Save(ctx, o))

	got, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusDelivered, got.Status)
	assert.NotNil(t, got.DeliveredAt)
	require.NotNil(t, got.Payment)
	assert.Equal(t, order.PaymentStatusPaid, got.Payment.Status)
}

func TestGormOrderRepository_ExistsByCode(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))
	ctx := context.Background()

	o := mustOrder(t, "ORD20250901000003", uuid.New(), someLines(uuid.New()))
	require.NoError(t, repo.Save(ctx, o))

	exists, err := repo.ExistsByCode(ctx, "ORD20250901000003")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode(ctx, "ORD20250901999999")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormOrderRepository_HasDelivered(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	productID := uuid.New()

	o := mustOrder(t, "ORD20250901000004", userID, someLines(productID))
	require.NoError(t, repo.Save(ctx, o))

	// pending order does not count
	ok, err := repo.HasDelivered(ctx, userID, productID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, o.Confirm())
	require.NoError(t, o.Ship())
	require.NoError(t, o.Deliver())
	require.NoError(t, repo.Save(ctx, o))

	ok, err = repo.HasDelivered(ctx, userID, productID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.HasDelivered(ctx, uuid.New(), productID)
	require.NoError(t, err)
	assert.False(t, ok, "another user's delivery does not count")

	ok, err = repo.HasDelivered(ctx, userID, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok, "a product outside the order does not count")
}

func TestGormOrderRepository_MarkItemReviewed(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	productID := uuid.New()

	delivered := mustOrder(t, "ORD20250901000010", userID, someLines(productID))
	require.NoError(t, delivered.Confirm())
	require.NoError(t, delivered.Ship())
	require.NoError(t, delivered.Deliver())
	require.NoError(t, repo.Save(ctx, delivered))

	pending := mustOrder(t, "ORD20250901000011", userID, someLines(productID))
	require.NoError(t, repo.Save(ctx, pending))

	require.NoError(t, repo.MarkItemReviewed(ctx, userID, productID))

	got, err := repo.FindByID(ctx, delivered.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].Reviewed)

	got, err = repo.FindByID(ctx, pending.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.False(t, got.Items[0].Reviewed, "only delivered orders are flagged")
}

func TestGormOrderRepository_FindByUser(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	first := mustOrder(t, "ORD20250901000005", userID, someLines(uuid.New()))
	second := mustOrder(t, "ORD20250901000006", userID, someLines(uuid.New()))
	other := mustOrder(t, "ORD20250901000007", uuid.New(), someLines(uuid.New()))
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, other))

	page, err := repo.FindByUser(ctx, userID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	for _, o := range page.Items {
		assert.Equal(t, userID, o.UserID)
		assert.NotEmpty(t, o.Items, "items are preloaded")
	}
}

func TestGormOrderRepository_FindAllFilters(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))
	ctx := context.Background()

	pending := mustOrder(t, "ORD20250901000008", uuid.New(), someLines(uuid.New()))
	require.NoError(t, repo.Save(ctx, pending))

	cancelled := mustOrder(t, "ORD20250901000009", uuid.New(), someLines(uuid.New()))
	require.NoError(t, cancelled.Cancel("changed my mind"))
	require.NoError(t, repo.Save(ctx, cancelled))

	filter := shared.DefaultFilter()
	filter.Filters["status"] = order.StatusCancelled
	page, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, cancelled.ID, page.Items[0].ID)

	filter = shared.DefaultFilter()
	filter.Search = "ord20250901000008"
	page, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, pending.ID, page.Items[0].ID)
}
