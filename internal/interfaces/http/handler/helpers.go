package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shopline/backend/internal/domain/shared"
)

// ListQuery carries generic pagination and search parameters
type ListQuery struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// bindListFilter binds pagination query parameters into a shared.Filter
func bindListFilter(c *gin.Context) (shared.Filter, error) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return shared.Filter{}, err
	}

	filter := shared.DefaultFilter()
	filter.Search = q.Search
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	if q.OrderBy != "" {
		filter.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		filter.OrderDir = q.OrderDir
	}
	return filter, nil
}
