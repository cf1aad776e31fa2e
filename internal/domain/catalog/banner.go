package catalog

import (
	"time"

	"github.com/shopline/backend/internal/domain/shared"
)

// BannerPosition identifies where a banner is displayed on the storefront
type BannerPosition string

const (
	BannerPositionHomeTop    BannerPosition = "HOME_TOP"
	BannerPositionHomeMiddle BannerPosition = "HOME_MIDDLE"
	BannerPositionCategory   BannerPosition = "CATEGORY"
)

// IsValid checks if the position is a valid BannerPosition
func (p BannerPosition) IsValid() bool {
	switch p {
	case BannerPositionHomeTop, BannerPositionHomeMiddle, BannerPositionCategory:
		return true
	}
	return false
}

// String returns the string representation of BannerPosition
func (p BannerPosition) String() string {
	return string(p)
}

// Banner represents a promotional banner
type Banner struct {
	shared.BaseAggregateRoot
	Title    string         `gorm:"not null"`
	Image    string         `gorm:"not null"`
	Link     string
	Slug     string         `gorm:"uniqueIndex;not null"`
	Position BannerPosition `gorm:"not null;index"`
	IsActive bool           `gorm:"not null;default:true"`
}

// NewBanner creates a new active banner
func NewBanner(title, image, link, slug string, position BannerPosition) (*Banner, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Banner title cannot be empty")
	}
	if image == "" {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Banner image cannot be empty")
	}
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Banner slug cannot be empty")
	}
	if !position.IsValid() {
		return nil, shared.NewDomainError("INVALID_POSITION", "Banner position must be HOME_TOP, HOME_MIDDLE or CATEGORY")
	}
	return &Banner{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Image:             image,
		Link:              link,
		Slug:              slug,
		Position:          position,
		IsActive:          true,
	}, nil
}

// Update changes the banner content
func (b *Banner) Update(title, image, link string, position BannerPosition) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Banner title cannot be empty")
	}
	if image == "" {
		return shared.NewDomainError("INVALID_IMAGE", "Banner image cannot be empty")
	}
	if !position.IsValid() {
		return shared.NewDomainError("INVALID_POSITION", "Banner position must be HOME_TOP, HOME_MIDDLE or CATEGORY")
	}
	b.Title = title
	b.Image = image
	b.Link = link
	b.Position = position
	b.UpdatedAt = time.Now()
	return nil
}

// Toggle flips the active flag and returns the new state
func (b *Banner) Toggle() bool {
	b.IsActive = !b.IsActive
	b.UpdatedAt = time.Now()
	return b.IsActive
}
