package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/catalog"
	"github.com/shopline/backend/internal/domain/shared"
)

// BrandService handles brand operations
type BrandService struct {
	brandRepo catalog.BrandRepository
}

// NewBrandService creates a new BrandService
func NewBrandService(brandRepo catalog.BrandRepository) *BrandService {
	return &BrandService{brandRepo: brandRepo}
}

// Create creates a brand with a slug derived from its name
func (s *BrandService) Create(ctx context.Context, req CreateBrandRequest) (*BrandResponse, error) {
	slug, err := s.uniqueSlug(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	brand, err := catalog.NewBrand(req.Name, slug, req.Logo)
	if err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	response := ToBrandResponse(brand)
	return &response, nil
}

// GetByID retrieves a brand by ID
func (s *BrandService) GetByID(ctx context.Context, id uuid.UUID) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBrandResponse(brand)
	return &response, nil
}

// List pages brands
func (s *BrandService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[BrandResponse], error) {
	page, err := s.brandRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapPage(page, ToBrandResponse), nil
}

// Update changes a brand's name and logo; the slug follows the name
func (s *BrandService) Update(ctx context.Context, id uuid.UUID, req CreateBrandRequest) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slug := catalog.Slugify(req.Name)
	if slug != brand.Slug {
		slug, err = s.uniqueSlug(ctx, req.Name)
		if err != nil {
			return nil, err
		}
	}
	if err := brand.Update(req.Name, slug, req.Logo); err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	response := ToBrandResponse(brand)
	return &response, nil
}

// Delete deletes a brand
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.brandRepo.Delete(ctx, id)
}

func (s *BrandService) uniqueSlug(ctx context.Context, name string) (string, error) {
	slug := catalog.Slugify(name)
	if slug == "" {
		return "", shared.NewDomainError("INVALID_NAME", "Brand name yields an empty slug")
	}

	exists, err := s.brandRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if !exists {
		return slug, nil
	}
	return fmt.Sprintf("%s-%s", slug, uuid.New().String()[:8]), nil
}
