package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopline/backend/internal/domain/catalog"
	"github.com/shopline/backend/internal/domain/shared"
)

func newProductService(productRepo *MockProductRepository, categoryRepo *MockCategoryRepository, brandRepo *MockBrandRepository, ratings *MockRatingProvider, storage *MockObjectStorage) *ProductService {
	return NewProductService(productRepo, categoryRepo, brandRepo, ratings, storage)
}

func TestProductService_Create(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := newProductService(productRepo, categoryRepo, new(MockBrandRepository), nil, nil)

	categoryID := uuid.New()
	category, err := catalog.NewCategory("Phones", "phones")
	require.NoError(t, err)
	category.ID = categoryID

	productRepo.On("ExistsBySlug", mock.Anything, "iphone-15-pro").Return(false, nil)
	categoryRepo.On("FindByID", mock.Anything, categoryID).Return(category, nil)
	productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	resp, err := service.Create(context.Background(), CreateProductRequest{
		Name:       "iPhone 15 Pro",
		Price:      decimal.NewFromInt(30000000),
		Quantity:   10,
		CategoryID: &categoryID,
	})
	require.NoError(t, err)
	assert.Equal(t, "iphone-15-pro", resp.Slug)
	assert.Equal(t, "active", resp.Status)
	require.NotNil(t, resp.CategoryID)
	assert.Equal(t, categoryID, *resp.CategoryID)
	productRepo.AssertExpectations(t)
}

func TestProductService_Create_SlugCollisionGetsSuffix(t *testing.T) {
	productRepo := new(MockProductRepository)
	service := newProductService(productRepo, new(MockCategoryRepository), new(MockBrandRepository), nil, nil)

	productRepo.On("ExistsBySlug", mock.Anything, "ao-thun").Return(true, nil)
	productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	resp, err := service.Create(context.Background(), CreateProductRequest{
		Name:     "Ao thun",
		Price:    decimal.NewFromInt(99000),
		Quantity: 5,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "ao-thun", resp.Slug)
	assert.Contains(t, resp.Slug, "ao-thun-")
}

func TestProductService_Create_UnknownCategory(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := newProductService(productRepo, categoryRepo, new(MockBrandRepository), nil, nil)

	categoryID := uuid.New()
	productRepo.On("ExistsBySlug", mock.Anything, mock.Anything).Return(false, nil)
	categoryRepo.On("FindByID", mock.Anything, categoryID).Return(nil, shared.ErrNotFound)

	_, err := service.Create(context.Background(), CreateProductRequest{
		Name:       "Thing",
		Price:      decimal.NewFromInt(1000),
		CategoryID: &categoryID,
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_GetBySlug_HidesUnavailable(t *testing.T) {
	productRepo := new(MockProductRepository)
	service := newProductService(productRepo, new(MockCategoryRepository), new(MockBrandRepository), new(MockRatingProvider), nil)

	p, err := catalog.NewProduct("Hidden", "hidden", decimal.NewFromInt(1000), 1)
	require.NoError(t, err)
	p.Deactivate()

	productRepo.On("FindBySlug", mock.Anything, "hidden").Return(p, nil)

	_, err = service.GetBySlug(context.Background(), "hidden")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductService_GetByID_IncludesRating(t *testing.T) {
	productRepo := new(MockProductRepository)
	ratings := new(MockRatingProvider)
	service := newProductService(productRepo, new(MockCategoryRepository), new(MockBrandRepository), ratings, nil)

	p, err := catalog.NewProduct("Rated", "rated", decimal.NewFromInt(1000), 1)
	require.NoError(t, err)

	productRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	ratings.On("AverageRating", mock.Anything, p.ID).Return(4.5, int64(12), nil)

	resp, err := service.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, resp.Rating)
	assert.Equal(t, int64(12), resp.ReviewCount)
}

func TestProductService_List_ForcesAvailableFilter(t *testing.T) {
	productRepo := new(MockProductRepository)
	service := newProductService(productRepo, new(MockCategoryRepository), new(MockBrandRepository), nil, nil)

	productRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["available"] == true
	})).Return(shared.NewPaginated([]*catalog.Product{}, 0, 1, 20), nil)

	_, err := service.List(context.Background(), ProductListFilter{})
	require.NoError(t, err)
	productRepo.AssertExpectations(t)
}

func TestProductService_Update(t *testing.T) {
	productRepo := new(MockProductRepository)
	service := newProductService(productRepo, new(MockCategoryRepository), new(MockBrandRepository), nil, nil)

	p, err := catalog.NewProduct("Old name", "old-name", decimal.NewFromInt(1000), 1)
	require.NoError(t, err)

	productRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	productRepo.On("Save", mock.Anything, p).Return(nil)

	newName := "New name"
	newPrice := decimal.NewFromInt(2000)
	quantity := 7
	resp, err := service.Update(context.Background(), p.ID, UpdateProductRequest{
		Name:     &newName,
		Price:    &newPrice,
		Quantity: &quantity,
	})
	require.NoError(t, err)
	assert.Equal(t, "New name", resp.Name)
	assert.True(t, resp.Price.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, 7, resp.Quantity)
	assert.Equal(t, "old-name", resp.Slug, "slug is stable across renames")
}

func TestProductService_Delete_SoftDeletes(t *testing.T) {
	productRepo := new(MockProductRepository)
	service := newProductService(productRepo, new(MockCategoryRepository), new(MockBrandRepository), nil, nil)

	p, err := catalog.NewProduct("Doomed", "doomed", decimal.NewFromInt(1000), 1)
	require.NoError(t, err)

	productRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	productRepo.On("Save", mock.Anything, p).Return(nil)

	require.NoError(t, service.Delete(context.Background(), p.ID))
	assert.True(t, p.Deleted)
	productRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProductService_GenerateImageUploadURL(t *testing.T) {
	storage := new(MockObjectStorage)
	service := newProductService(new(MockProductRepository), new(MockCategoryRepository), new(MockBrandRepository), nil, storage)

	expiresAt := time.Now().Add(15 * time.Minute)
	storage.On("GenerateUploadURL", mock.Anything, mock.MatchedBy(func(key string) bool {
		return len(key) > len("products/") && key[:9] == "products/"
	}), "image/png", uploadURLTTL).Return("https://s3/upload", expiresAt, nil)
	storage.On("PublicURL", mock.Anything).Return("https://cdn/products/x.png")

	resp, err := service.GenerateImageUploadURL(context.Background(), UploadURLRequest{ContentType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, "https://s3/upload", resp.UploadURL)
	assert.Equal(t, "https://cdn/products/x.png", resp.PublicURL)
	assert.NotEmpty(t, resp.StorageKey)
}

func TestProductService_GenerateImageUploadURL_RejectsNonImage(t *testing.T) {
	service := newProductService(new(MockProductRepository), new(MockCategoryRepository), new(MockBrandRepository), nil, new(MockObjectStorage))

	_, err := service.GenerateImageUploadURL(context.Background(), UploadURLRequest{ContentType: "application/pdf"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CONTENT_TYPE", domainErr.Code)
}

func TestProductService_ConfirmImage(t *testing.T) {
	productRepo := new(MockProductRepository)
	storage := new(MockObjectStorage)
	service := newProductService(productRepo, new(MockCategoryRepository), new(MockBrandRepository), nil, storage)

	p, err := catalog.NewProduct("Pictured", "pictured", decimal.NewFromInt(1000), 1)
	require.NoError(t, err)

	productRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	storage.On("ObjectExists", mock.Anything, "products/abc.jpg").Return(true, nil)
	storage.On("PublicURL", "products/abc.jpg").Return("https://cdn/products/abc.jpg")
	productRepo.On("Save", mock.Anything, p).Return(nil)

	resp, err := service.ConfirmImage(context.Background(), p.ID, "products/abc.jpg")
	require.NoError(t, err)
	assert.Contains(t, resp.Images, "https://cdn/products/abc.jpg")
}

func TestProductService_ConfirmImage_MissingObject(t *testing.T) {
	productRepo := new(MockProductRepository)
	storage := new(MockObjectStorage)
	service := newProductService(productRepo, new(MockCategoryRepository), new(MockBrandRepository), nil, storage)

	p, err := catalog.NewProduct("Pictured", "pictured", decimal.NewFromInt(1000), 1)
	require.NoError(t, err)

	productRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	storage.On("ObjectExists", mock.Anything, "products/missing.jpg").Return(false, nil)

	_, err = service.ConfirmImage(context.Background(), p.ID, "products/missing.jpg")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UPLOAD_NOT_FOUND", domainErr.Code)
	productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
