package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopline/backend/internal/domain/identity"
	"github.com/shopline/backend/internal/domain/shared"
)

const (
	defaultSuggestions = 10
	maxSuggestions     = 50
)

// SearchService runs storefront product search and records the query
// in the searching user's history
type SearchService struct {
	products *ProductService
	userRepo identity.UserRepository
}

// NewSearchService creates a new SearchService
func NewSearchService(products *ProductService, userRepo identity.UserRepository) *SearchService {
	return &SearchService{products: products, userRepo: userRepo}
}

// Search finds available products matching the query. A nil userID
// means an anonymous visitor; history is only kept for logged-in
// users, and a failure to record it never fails the search.
func (s *SearchService) Search(ctx context.Context, userID *uuid.UUID, query string, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	filter.Search = query

	page, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if userID != nil && query != "" {
		s.recordHistory(ctx, *userID, query)
	}
	return page, nil
}

// Suggestions returns the best-selling available products, for the
// storefront search box before the visitor types anything
func (s *SearchService) Suggestions(ctx context.Context, limit int) ([]ProductResponse, error) {
	if limit <= 0 || limit > maxSuggestions {
		limit = defaultSuggestions
	}

	page, err := s.products.List(ctx, ProductListFilter{
		PageSize: limit,
		OrderBy:  "buy_turn",
		OrderDir: "desc",
	})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// RecordSearch explicitly adds a term to the user's history
func (s *SearchService) RecordSearch(ctx context.Context, userID uuid.UUID, query string) ([]string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.RecordSearch(query)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user.SearchHistory, nil
}

// History returns the user's recent search terms, newest first
func (s *SearchService) History(ctx context.Context, userID uuid.UUID) ([]string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.SearchHistory, nil
}

// ClearHistory wipes the user's search history
func (s *SearchService) ClearHistory(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.ClearSearchHistory()
	return s.userRepo.Save(ctx, user)
}

func (s *SearchService) recordHistory(ctx context.Context, userID uuid.UUID, query string) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return
	}
	user.RecordSearch(query)
	_ = s.userRepo.Save(ctx, user)
}
