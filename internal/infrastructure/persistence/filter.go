package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/shopline/backend/internal/domain/shared"
)

// allowedSortColumns whitelists order-by targets per model to keep
// user-supplied sort fields out of raw SQL.
var allowedSortColumns = map[string]bool{
	"name":       true,
	"price":      true,
	"buy_turn":   true,
	"created_at": true,
	"updated_at": true,
	"rating":     true,
	"status":     true,
	"total":      true,
	"email":      true,
	"title":      true,
}

// applyPagination applies page/page_size and ordering to a query
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.OrderBy != "" && allowedSortColumns[filter.OrderBy] {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// searchPattern builds a case-insensitive LIKE pattern
func searchPattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
