package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopline/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name          string                 `json:"name" binding:"required,min=1,max=200"`
	Description   string                 `json:"description" binding:"max=5000"`
	Price         decimal.Decimal        `json:"price" binding:"required"`
	OldPrice      *decimal.Decimal       `json:"old_price"`
	Quantity      int                    `json:"quantity" binding:"min=0"`
	Images        []string               `json:"images"`
	Specification map[string]interface{} `json:"specification"`
	BrandID       *uuid.UUID             `json:"brand_id"`
	CategoryID    *uuid.UUID             `json:"category_id"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name          *string                `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string                `json:"description" binding:"omitempty,max=5000"`
	Price         *decimal.Decimal       `json:"price"`
	OldPrice      *decimal.Decimal       `json:"old_price"`
	Quantity      *int                   `json:"quantity" binding:"omitempty,min=0"`
	Images        []string               `json:"images"`
	Specification map[string]interface{} `json:"specification"`
	BrandID       *uuid.UUID             `json:"brand_id"`
	CategoryID    *uuid.UUID             `json:"category_id"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID              `json:"id"`
	Name          string                 `json:"name"`
	Slug          string                 `json:"slug"`
	Description   string                 `json:"description"`
	Price         decimal.Decimal        `json:"price"`
	OldPrice      *decimal.Decimal       `json:"old_price,omitempty"`
	Images        []string               `json:"images"`
	Specification map[string]interface{} `json:"specification,omitempty"`
	Quantity      int                    `json:"quantity"`
	BuyTurn       int                    `json:"buy_turn"`
	BrandID       *uuid.UUID             `json:"brand_id,omitempty"`
	CategoryID    *uuid.UUID             `json:"category_id,omitempty"`
	Status        string                 `json:"status"`
	Rating        float64                `json:"rating"`
	ReviewCount   int64                  `json:"review_count"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// ProductListFilter represents filter options for product listings
type ProductListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=active inactive"`
	BrandID    *uuid.UUID `form:"brand_id"`
	CategoryID *uuid.UUID `form:"category_id"`
	MinPrice   *float64   `form:"min_price"`
	MaxPrice   *float64   `form:"max_price"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by" binding:"omitempty,oneof=name price buy_turn created_at"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateBrandRequest represents a request to create a brand
type CreateBrandRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Logo string `json:"logo" binding:"omitempty,url"`
}

// BrandResponse represents a brand in API responses
type BrandResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Logo      string    `json:"logo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateBannerRequest represents a request to create a banner
type CreateBannerRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Image    string `json:"image" binding:"required,url"`
	Link     string `json:"link" binding:"omitempty,url"`
	Position string `json:"position" binding:"required,oneof=HOME_TOP HOME_MIDDLE CATEGORY"`
}

// UpdateBannerRequest represents a request to update a banner
type UpdateBannerRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Image    string `json:"image" binding:"required,url"`
	Link     string `json:"link" binding:"omitempty,url"`
	Position string `json:"position" binding:"required,oneof=HOME_TOP HOME_MIDDLE CATEGORY"`
}

// BannerResponse represents a banner in API responses
type BannerResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	Link      string    `json:"link,omitempty"`
	Slug      string    `json:"slug"`
	Position  string    `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadURLRequest asks for a presigned upload URL
type UploadURLRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// UploadURLResponse carries a presigned upload URL and the public URL
// the object will be served from once uploaded
type UploadURLResponse struct {
	UploadURL  string    `json:"upload_url"`
	PublicURL  string    `json:"public_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         p.Price,
		OldPrice:      p.OldPrice,
		Images:        p.Images,
		Specification: p.Specification,
		Quantity:      p.Quantity,
		BuyTurn:       p.BuyTurn,
		BrandID:       p.BrandID,
		CategoryID:    p.CategoryID,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []*catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, ToProductResponse(p))
	}
	return responses
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
	}
}

// ToBrandResponse converts a domain Brand to BrandResponse
func ToBrandResponse(b *catalog.Brand) BrandResponse {
	return BrandResponse{
		ID:        b.ID,
		Name:      b.Name,
		Slug:      b.Slug,
		Logo:      b.Logo,
		CreatedAt: b.CreatedAt,
	}
}

// ToBannerResponse converts a domain Banner to BannerResponse
func ToBannerResponse(b *catalog.Banner) BannerResponse {
	return BannerResponse{
		ID:        b.ID,
		Title:     b.Title,
		Image:     b.Image,
		Link:      b.Link,
		Slug:      b.Slug,
		Position:  string(b.Position),
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
	}
}
