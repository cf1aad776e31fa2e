package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopline/backend/internal/domain/catalog"
	"github.com/shopline/backend/internal/domain/shared"
)

func mustProduct(t *testing.T, name, slug string, price int64, quantity int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, slug, decimal.NewFromInt(price), quantity)
	require.NoError(t, err)
	return p
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	ctx := context.Background()

	p := mustProduct(t, "iPhone 15", "iphone-15", 25000000, 10)
	p.SetImages([]string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"})
	p.SetSpecification(map[string]interface{}{"ram": "8GB", "storage": "256GB"})
	require.NoError(t, repo.Save(ctx, p))

	byID, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "iPhone 15", byID.Name)
	assert.True(t, byID.Price.Equal(decimal.NewFromInt(25000000)))
	assert.Len(t, byID.Images, 2)
	assert.Equal(t, "8GB", byID.Specification["ram"])

	bySlug, err := repo.FindBySlug(ctx, "iphone-15")
	require.NoError(t, err)
	assert.Equal(t, p.ID, bySlug.ID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	exists, err := repo.ExistsBySlug(ctx, "iphone-15")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySlug(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormProductRepository_FindByIDs(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	ctx := context.Background()

	a := mustProduct(t, "A", "a", 100, 1)
	b := mustProduct(t, "B", "b", 200, 1)
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	found, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestGormProductRepository_DeductStock(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	ctx := context.Background()

	p := mustProduct(t, "Stocked", "stocked", 1000, 5)
	require.NoError(t, repo.Save(ctx, p))

	require.NoError(t, repo.DeductStock(ctx, p.ID, 3))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, 3, got.BuyTurn)

	// more than remaining stock
	err = repo.DeductStock(ctx, p.ID, 3)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	got, err = repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity, "failed deduction must not change stock")

	err = repo.DeductStock(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_RestoreStock(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	ctx := context.Background()

	p := mustProduct(t, "Restored", "restored", 1000, 5)
	require.NoError(t, repo.Save(ctx, p))
	require.NoError(t, repo.DeductStock(ctx, p.ID, 4))

	require.NoError(t, repo.RestoreStock(ctx, p.ID, 4))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
	assert.Equal(t, 0, got.BuyTurn)

	err = repo.RestoreStock(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_FindAll(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	ctx := context.Background()

	brandID := uuid.New()

	phone := mustProduct(t, "Samsung Galaxy", "samsung-galaxy", 15000000, 3)
	phone.AssignBrand(brandID)
	require.NoError(t, repo.Save(ctx, phone))

	laptop := mustProduct(t, "Macbook Air", "macbook-air", 30000000, 2)
	require.NoError(t, repo.Save(ctx, laptop))

	hidden := mustProduct(t, "Old Samsung", "old-samsung", 5000000, 0)
	hidden.Deactivate()
	require.NoError(t, repo.Save(ctx, hidden))

	t.Run("search is case-insensitive", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "SAMSUNG"
		page, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("filter by brand", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["brand_id"] = brandID
		page, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, phone.ID, page.Items[0].ID)
	})

	t.Run("available hides inactive", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["available"] = true
		page, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("price range", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["min_price"] = 10000000
		filter.Filters["max_price"] = 20000000
		page, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Samsung Galaxy", page.Items[0].Name)
	})

	t.Run("sort by price ascending", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "price"
		filter.OrderDir = "asc"
		page, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, page.Items, 3)
		assert.Equal(t, "Old Samsung", page.Items[0].Name)
	})

	t.Run("unknown sort column falls back", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "name; DROP TABLE products"
		_, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
	})

	t.Run("pagination", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.PageSize = 2
		page, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, 2, page.TotalPages)
	})
}

func TestGormProductRepository_Delete(t *testing.T) {
	repo := NewGormProductRepository(newTestDB(t))
	ctx := context.Background()

	p := mustProduct(t, "Gone", "gone", 100, 1)
	require.NoError(t, repo.Save(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err := repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
