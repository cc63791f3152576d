package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"vitrina/models"
)

const (
	searchLimit       = 6
	maxSearchQueryLen = 100
)

// SearchService answers search-as-you-type requests
type SearchService struct {
	client StorefrontClientInterface
}

// NewSearchService creates a new SearchService instance
func NewSearchService(client StorefrontClientInterface) *SearchService {
	return &SearchService{client: client}
}

// Search returns suggestions for query. Blank queries return an empty result
// without calling the API.
func (s *SearchService) Search(ctx context.Context, query string) (*models.SearchResult, error) {
	query = strings.Join(strings.Fields(query), " ")
	if query == "" {
		return &models.SearchResult{}, nil
	}
	if utf8.RuneCountInString(query) > maxSearchQueryLen {
		query = string([]rune(query)[:maxSearchQueryLen])
	}

	res, err := s.client.PredictiveSearch(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", query, err)
	}
	return res, nil
}
