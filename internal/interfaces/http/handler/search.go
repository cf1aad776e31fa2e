package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/shopline/backend/internal/application/catalog"
	"github.com/shopline/backend/internal/interfaces/http/middleware"
)

// SearchHandler handles product search and per-user search history
type SearchHandler struct {
	BaseHandler
	searchService *catalogapp.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService *catalogapp.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search runs a product search. Signed-in callers get the query
// recorded in their history.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		h.BadRequest(c, "q is required")
		return
	}

	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	var userID *uuid.UUID
	if id, ok := middleware.CurrentUserID(c); ok {
		userID = &id
	}

	page, err := h.searchService.Search(c.Request.Context(), userID, query, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// Suggestions returns popular products for the empty search box
func (h *SearchHandler) Suggestions(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "limit must be a number")
			return
		}
		limit = parsed
	}

	items, err := h.searchService.Suggestions(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// RecordSearch adds a term to the caller's search history
func (h *SearchHandler) RecordSearch(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req struct {
		Query string `json:"query" binding:"required,max=200"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	history, err := h.searchService.RecordSearch(c.Request.Context(), userID, req.Query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// History returns the caller's recent search queries
func (h *SearchHandler) History(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	history, err := h.searchService.History(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// ClearHistory wipes the caller's search history
func (h *SearchHandler) ClearHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.searchService.ClearHistory(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
