package service

import (
	"context"

	"vitrina/models"
)

// SearchServiceInterface defines the contract for predictive search
type SearchServiceInterface interface {
	Search(ctx context.Context, query string) (*models.SearchResult, error)
}

// Ensure SearchService implements SearchServiceInterface
var _ SearchServiceInterface = (*SearchService)(nil)
