package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/catalog"
	"github.com/shopline/backend/internal/domain/shared"
)

// BannerService handles promotional banner operations
type BannerService struct {
	bannerRepo catalog.BannerRepository
}

// NewBannerService creates a new BannerService
func NewBannerService(bannerRepo catalog.BannerRepository) *BannerService {
	return &BannerService{bannerRepo: bannerRepo}
}

// Create creates an active banner
func (s *BannerService) Create(ctx context.Context, req CreateBannerRequest) (*BannerResponse, error) {
	slug := catalog.Slugify(req.Title)
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Banner title yields an empty slug")
	}
	// banner slugs are only used for admin bookkeeping, suffix always
	slug = fmt.Sprintf("%s-%s", slug, uuid.New().String()[:8])

	banner, err := catalog.NewBanner(req.Title, req.Image, req.Link, slug, catalog.BannerPosition(req.Position))
	if err != nil {
		return nil, err
	}
	if err := s.bannerRepo.Save(ctx, banner); err != nil {
		return nil, err
	}

	response := ToBannerResponse(banner)
	return &response, nil
}

// GetActiveByPosition lists the active banners for a storefront slot
func (s *BannerService) GetActiveByPosition(ctx context.Context, position string) ([]BannerResponse, error) {
	pos := catalog.BannerPosition(position)
	if !pos.IsValid() {
		return nil, shared.NewDomainError("INVALID_POSITION", "Banner position must be HOME_TOP, HOME_MIDDLE or CATEGORY")
	}

	banners, err := s.bannerRepo.FindActiveByPosition(ctx, pos)
	if err != nil {
		return nil, err
	}

	responses := make([]BannerResponse, 0, len(banners))
	for _, b := range banners {
		responses = append(responses, ToBannerResponse(b))
	}
	return responses, nil
}

// List pages all banners for back-office views
func (s *BannerService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[BannerResponse], error) {
	page, err := s.bannerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapPage(page, ToBannerResponse), nil
}

// Update changes a banner's content and placement
func (s *BannerService) Update(ctx context.Context, id uuid.UUID, req UpdateBannerRequest) (*BannerResponse, error) {
	banner, err := s.bannerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := banner.Update(req.Title, req.Image, req.Link, catalog.BannerPosition(req.Position)); err != nil {
		return nil, err
	}
	if err := s.bannerRepo.Save(ctx, banner); err != nil {
		return nil, err
	}

	response := ToBannerResponse(banner)
	return &response, nil
}

// Toggle flips a banner's active flag and returns the new state
func (s *BannerService) Toggle(ctx context.Context, id uuid.UUID) (bool, error) {
	banner, err := s.bannerRepo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	active := banner.Toggle()
	if err := s.bannerRepo.Save(ctx, banner); err != nil {
		return false, err
	}
	return active, nil
}

// Delete deletes a banner
func (s *BannerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.bannerRepo.Delete(ctx, id)
}
