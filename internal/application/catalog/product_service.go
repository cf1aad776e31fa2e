package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopline/backend/internal/domain/catalog"
	"github.com/shopline/backend/internal/domain/shared"
)

// uploadURLTTL bounds how long a presigned product image upload stays valid
const uploadURLTTL = 15 * time.Minute

// RatingProvider supplies review aggregates for product responses
type RatingProvider interface {
	AverageRating(ctx context.Context, productID uuid.UUID) (float64, int64, error)
}

// ProductService handles product catalog operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	brandRepo    catalog.BrandRepository
	ratings      RatingProvider
	storage      ObjectStorageService
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	brandRepo catalog.BrandRepository,
	ratings RatingProvider,
	storage ObjectStorageService,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		ratings:      ratings,
		storage:      storage,
	}
}

// Create creates a new product. The slug is derived from the name and
// suffixed when taken.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	slug, err := s.uniqueSlug(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, slug, req.Price, req.Quantity)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.UpdateDetails(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.OldPrice != nil {
		if err := product.SetPricing(req.Price, req.OldPrice); err != nil {
			return nil, err
		}
	}
	if len(req.Images) > 0 {
		product.SetImages(req.Images)
	}
	if req.Specification != nil {
		product.SetSpecification(req.Specification)
	}

	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.AssignCategory(*req.CategoryID)
	}
	if req.BrandID != nil {
		if err := s.ensureBrand(ctx, *req.BrandID); err != nil {
			return nil, err
		}
		product.AssignBrand(*req.BrandID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID, review aggregates included
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, product)
}

// GetBySlug retrieves a storefront product by slug. Deleted and
// inactive products stay hidden.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable() {
		return nil, shared.ErrNotFound
	}
	return s.respond(ctx, product)
}

// List pages storefront products. Only available products appear.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := s.toDomainFilter(filter)
	domainFilter.Filters["available"] = true

	page, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return mapPage(page, ToProductResponse), nil
}

// ListAll pages every product for back-office views, deleted included
func (s *ProductService) ListAll(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	page, err := s.productRepo.FindAll(ctx, s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return mapPage(page, ToProductResponse), nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.UpdateDetails(name, description); err != nil {
			return nil, err
		}
	}

	if req.Price != nil || req.OldPrice != nil {
		price := product.Price
		oldPrice := product.OldPrice
		if req.Price != nil {
			price = *req.Price
		}
		if req.OldPrice != nil {
			oldPrice = req.OldPrice
		}
		if err := product.SetPricing(price, oldPrice); err != nil {
			return nil, err
		}
	}

	if req.Quantity != nil {
		if err := product.SetStock(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.Images != nil {
		product.SetImages(req.Images)
	}
	if req.Specification != nil {
		product.SetSpecification(req.Specification)
	}
	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.AssignCategory(*req.CategoryID)
	}
	if req.BrandID != nil {
		if err := s.ensureBrand(ctx, *req.BrandID); err != nil {
			return nil, err
		}
		product.AssignBrand(*req.BrandID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Activate makes the product purchasable again
func (s *ProductService) Activate(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := product.Activate(); err != nil {
		return err
	}
	return s.productRepo.Save(ctx, product)
}

// Deactivate hides the product from the storefront
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Deactivate()
	return s.productRepo.Save(ctx, product)
}

// Delete soft-deletes a product. Order history keeps its frozen copy
// of the product data, so rows are never dropped.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := product.MarkDeleted(); err != nil {
		return err
	}
	return s.productRepo.Save(ctx, product)
}

// GenerateImageUploadURL issues a presigned URL for a product image
func (s *ProductService) GenerateImageUploadURL(ctx context.Context, req UploadURLRequest) (*UploadURLResponse, error) {
	key, err := NewImageKey("products", req.ContentType)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", err.Error())
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, req.ContentType, uploadURLTTL)
	if err != nil {
		return nil, err
	}

	return &UploadURLResponse{
		UploadURL:  uploadURL,
		PublicURL:  s.storage.PublicURL(key),
		StorageKey: key,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmImage attaches an uploaded image to the product after
// verifying the object actually landed in storage
func (s *ProductService) ConfirmImage(ctx context.Context, id uuid.UUID, storageKey string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "Uploaded image was not found in storage")
	}

	product.AddImage(s.storage.PublicURL(storageKey))
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

func (s *ProductService) respond(ctx context.Context, product *catalog.Product) (*ProductResponse, error) {
	response := ToProductResponse(product)
	if s.ratings != nil {
		avg, count, err := s.ratings.AverageRating(ctx, product.ID)
		if err == nil {
			response.Rating = avg
			response.ReviewCount = count
		}
	}
	return &response, nil
}

func (s *ProductService) toDomainFilter(filter ProductListFilter) shared.Filter {
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
	if filter.BrandID != nil {
		domainFilter.Filters["brand_id"] = *filter.BrandID
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.MinPrice != nil {
		domainFilter.Filters["min_price"] = decimal.NewFromFloat(*filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		domainFilter.Filters["max_price"] = decimal.NewFromFloat(*filter.MaxPrice)
	}
	return domainFilter
}

func (s *ProductService) ensureCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return err
	}
	return nil
}

func (s *ProductService) ensureBrand(ctx context.Context, id uuid.UUID) error {
	if _, err := s.brandRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_BRAND", "Brand not found")
		}
		return err
	}
	return nil
}

// uniqueSlug slugifies the name and appends a short random suffix when
// the plain slug is taken
func (s *ProductService) uniqueSlug(ctx context.Context, name string) (string, error) {
	slug := catalog.Slugify(name)
	if slug == "" {
		return "", shared.NewDomainError("INVALID_NAME", "Product name yields an empty slug")
	}

	exists, err := s.productRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if !exists {
		return slug, nil
	}
	return fmt.Sprintf("%s-%s", slug, uuid.New().String()[:8]), nil
}

// mapPage converts a paginated domain result to a response page
func mapPage[D any, R any](page *shared.Paginated[D], convert func(D) R) *shared.Paginated[R] {
	items := make([]R, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, convert(item))
	}
	return &shared.Paginated[R]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
