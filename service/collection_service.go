package service

import (
	"context"
	"fmt"
	"strings"

	"vitrina/logger"
	"vitrina/models"
	"vitrina/pagination"
)

// CollectionPage is one rendered page of a collection
type CollectionPage struct {
	Collection *models.Collection
	Page       pagination.Result[models.ProductCard]
	Request    pagination.Request
}

// CollectionService loads collection chunks and paginates them
// Implements CollectionServiceInterface
type CollectionService struct {
	client StorefrontClientInterface
	cfg    pagination.Config
}

// Ensure CollectionService implements CollectionServiceInterface
var _ CollectionServiceInterface = (*CollectionService)(nil)

// NewCollectionService creates a new CollectionService instance
func NewCollectionService(client StorefrontClientInterface, cfg pagination.Config) *CollectionService {
	return &CollectionService{client: client, cfg: cfg}
}

// Config returns the page geometry in use
func (s *CollectionService) Config() pagination.Config { return s.cfg }

// LoadPage fetches the chunk selected by req and derives the visible page
func (s *CollectionService) LoadPage(ctx context.Context, handle string, req pagination.Request) (*CollectionPage, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, fmt.Errorf("collection handle: %w", ErrNotFound)
	}

	vars := pagination.ChunkQuery(req.Cursor, req.Direction, s.cfg)
	col, err := s.client.Collection(ctx, handle, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", handle, err)
	}

	page := pagination.Paginate(col.Products.Nodes, s.cfg, req, col.Products.PageInfo)
	logger.L().Debugf("📄 LoadPage: collection=%s chunk=%d page=%d/%d", handle, len(col.Products.Nodes), page.CurrentPage, page.TotalPages)

	return &CollectionPage{Collection: col, Page: page, Request: req}, nil
}
