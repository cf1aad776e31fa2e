package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/shopline/backend/internal/application/catalog"
)

// BannerHandler handles promotional banner endpoints
type BannerHandler struct {
	BaseHandler
	bannerService *catalogapp.BannerService
}

// NewBannerHandler creates a new BannerHandler
func NewBannerHandler(bannerService *catalogapp.BannerService) *BannerHandler {
	return &BannerHandler{bannerService: bannerService}
}

// Active returns the active banners for a storefront position
func (h *BannerHandler) Active(c *gin.Context) {
	position := c.Query("position")
	if position == "" {
		h.BadRequest(c, "position is required")
		return
	}

	banners, err := h.bannerService.GetActiveByPosition(c.Request.Context(), position)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, banners)
}

// List returns all banners for admins
func (h *BannerHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.bannerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// Create adds a new banner
func (h *BannerHandler) Create(c *gin.Context) {
	var req catalogapp.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.bannerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Update edits a banner
func (h *BannerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid banner ID format")
		return
	}

	var req catalogapp.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.bannerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Toggle flips a banner's active flag and returns the new state
func (h *BannerHandler) Toggle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid banner ID format")
		return
	}

	active, err := h.bannerService.Toggle(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"is_active": active})
}

// Delete removes a banner
func (h *BannerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid banner ID format")
		return
	}

	if err := h.bannerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
