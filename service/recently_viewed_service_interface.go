package service

import (
	"context"

	"vitrina/models"
)

// RecentlyViewedServiceInterface defines the contract for per-visitor product history
type RecentlyViewedServiceInterface interface {
	Record(ctx context.Context, sessionID string, product *models.Product, image *models.Image)
	List(ctx context.Context, sessionID string, skip ...string) []models.RecentlyViewedEntry
}

// Ensure RecentlyViewedService implements RecentlyViewedServiceInterface
var _ RecentlyViewedServiceInterface = (*RecentlyViewedService)(nil)
