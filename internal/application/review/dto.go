package review

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/review"
)

// CreateReviewRequest represents a request to review a product
type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Comment   string    `json:"comment" binding:"max=2000"`
}

// UpdateReviewRequest revises the caller's existing review
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ReplyRequest sets the shop's reply on a review
type ReplyRequest struct {
	Reply string `json:"reply" binding:"required,max=2000"`
}

// ReviewListFilter represents filter options for moderation listings
type ReviewListFilter struct {
	ProductID *uuid.UUID `form:"product_id"`
	UserID    *uuid.UUID `form:"user_id"`
	Rating    int        `form:"rating" binding:"omitempty,min=1,max=5"`
	Hidden    *bool      `form:"hidden"`
	HasReply  *bool      `form:"has_reply"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by" binding:"omitempty,oneof=created_at rating"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PageFilter carries pagination for public review listings
type PageFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID        uuid.UUID  `json:"id"`
	ProductID uuid.UUID  `json:"product_id"`
	UserID    uuid.UUID  `json:"user_id"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment,omitempty"`
	Reply     string     `json:"reply,omitempty"`
	RepliedAt *time.Time `json:"replied_at,omitempty"`
	RepliedBy *uuid.UUID `json:"replied_by,omitempty"`
	IsHidden  bool       `json:"is_hidden"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ProductReviewsResponse pages the visible reviews of a product along
// with its rating summary
type ProductReviewsResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	Total         int64            `json:"total"`
	Page          int              `json:"page"`
	PageSize      int              `json:"page_size"`
	TotalPages    int              `json:"total_pages"`
	AverageRating float64          `json:"average_rating"`
	ReviewCount   int64            `json:"review_count"`
}

// ToReviewResponse converts a domain Review to ReviewResponse
func ToReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Reply:     r.Reply,
		RepliedAt: r.RepliedAt,
		RepliedBy: r.RepliedBy,
		IsHidden:  r.IsHidden,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
