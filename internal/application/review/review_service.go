package review

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopline/backend/internal/domain/order"
	"github.com/shopline/backend/internal/domain/review"
	"github.com/shopline/backend/internal/domain/shared"
	"github.com/shopline/backend/internal/infrastructure/logger"
)

// ReviewService handles product review operations
type ReviewService struct {
	reviewRepo review.Repository
	orderRepo  order.Repository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo review.Repository, orderRepo order.Repository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
	}
}

// Submit creates a review. The caller must have a delivered order
// containing the product, and one review per user and product.
func (s *ReviewService) Submit(ctx context.Context, userID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	purchased, err := s.orderRepo.HasDelivered(ctx, userID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, shared.NewDomainError("PURCHASE_REQUIRED", "Only buyers of a delivered order can review this product")
	}

	if _, err := s.reviewRepo.FindByUserAndProduct(ctx, userID, req.ProductID); err == nil {
		return nil, shared.NewDomainError("REVIEW_EXISTS", "You have already reviewed this product")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	r, err := review.NewReview(userID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	// The flag drives the "write a review" hint on order history; a
	// failure here must not lose the saved review.
	if err := s.orderRepo.MarkItemReviewed(ctx, userID, req.ProductID); err != nil {
		logger.L(ctx).Warn("failed to flag order item as reviewed", zap.Error(err))
	}

	response := ToReviewResponse(r)
	return &response, nil
}

// Update revises the caller's own review. The reply, if any, survives.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error) {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, shared.ErrNotFound
	}
	if err := r.Revise(req.Rating, req.Comment); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	response := ToReviewResponse(r)
	return &response, nil
}

// ListByProduct pages the visible reviews of a product together with
// the average rating, rounded to one decimal
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID, filter PageFilter) (*ProductReviewsResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	page, err := s.reviewRepo.FindVisibleByProduct(ctx, productID, domainFilter)
	if err != nil {
		return nil, err
	}
	average, count, err := s.reviewRepo.AverageRating(ctx, productID)
	if err != nil {
		return nil, err
	}

	reviews := make([]ReviewResponse, 0, len(page.Items))
	for _, r := range page.Items {
		reviews = append(reviews, ToReviewResponse(r))
	}

	return &ProductReviewsResponse{
		Reviews:       reviews,
		Total:         page.Total,
		Page:          page.Page,
		PageSize:      page.PageSize,
		TotalPages:    page.TotalPages,
		AverageRating: math.Round(average*10) / 10,
		ReviewCount:   count,
	}, nil
}

// ListAll pages every review for moderation, hidden included
func (s *ReviewService) ListAll(ctx context.Context, filter ReviewListFilter) (*shared.Paginated[ReviewResponse], error) {
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
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.UserID != nil {
		domainFilter.Filters["user_id"] = *filter.UserID
	}
	if filter.Rating > 0 {
		domainFilter.Filters["rating"] = filter.Rating
	}
	if filter.Hidden != nil {
		domainFilter.Filters["is_hidden"] = *filter.Hidden
	}
	if filter.HasReply != nil {
		domainFilter.Filters["has_reply"] = *filter.HasReply
	}

	page, err := s.reviewRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	reviews := make([]ReviewResponse, 0, len(page.Items))
	for _, r := range page.Items {
		reviews = append(reviews, ToReviewResponse(r))
	}
	return &shared.Paginated[ReviewResponse]{
		Items:      reviews,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// Reply sets the shop's reply on a review, stamped with the replying
// admin. A later reply overwrites.
func (s *ReviewService) Reply(ctx context.Context, reviewID, adminID uuid.UUID, req ReplyRequest) (*ReviewResponse, error) {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if err := r.SetReply(req.Reply, adminID); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	response := ToReviewResponse(r)
	return &response, nil
}

// ToggleHidden flips moderation visibility and returns the new state
func (s *ReviewService) ToggleHidden(ctx context.Context, reviewID uuid.UUID) (bool, error) {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return false, err
	}
	hidden := r.ToggleHidden()
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return false, err
	}
	return hidden, nil
}
