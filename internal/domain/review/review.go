package review

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/shared"
)

// Review is a purchase-gated product review. One review per user and
// product; duplicates are rejected and the owner revises in place.
type Review struct {
	shared.BaseAggregateRoot
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product;index"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	Reply     string     `gorm:"type:text"`
	RepliedAt *time.Time
	RepliedBy *uuid.UUID `gorm:"type:uuid"`
	IsHidden  bool `gorm:"not null;default:false"`
}

// NewReview creates a review with a 1 to 5 star rating
func NewReview(userID, productID uuid.UUID, rating int, comment string) (*Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		ProductID:         productID,
		Rating:            rating,
		Comment:           comment,
	}, nil
}

// Revise replaces the rating and comment, keeping identity and reply
func (r *Review) Revise(rating int, comment string) error {
	if err := validateRating(rating); err != nil {
		return err
	}
	r.Rating = rating
	r.Comment = comment
	r.UpdatedAt = time.Now()
	return nil
}

// SetReply records the shop's reply and the replying admin. A later
// reply overwrites the previous one.
func (r *Review) SetReply(reply string, adminID uuid.UUID) error {
	if reply == "" {
		return shared.NewDomainError("INVALID_REPLY", "Reply cannot be empty")
	}
	now := time.Now()
	r.Reply = reply
	r.RepliedAt = &now
	r.RepliedBy = &adminID
	r.UpdatedAt = now
	return nil
}

// ToggleHidden flips moderation visibility and returns the new state
func (r *Review) ToggleHidden() bool {
	r.IsHidden = !r.IsHidden
	r.UpdatedAt = time.Now()
	return r.IsHidden
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	return nil
}
