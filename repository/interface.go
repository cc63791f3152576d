package repository

import (
	"context"
	"time"

	"vitrina/models"
)

// AnalyticsRepositoryInterface defines the contract for analytics event storage
type AnalyticsRepositoryInterface interface {
	InsertBatch(ctx context.Context, events []models.AnalyticsEvent) error
	TopResources(ctx context.Context, kind string, since time.Time, limit int) ([]models.ResourceViewCount, error)
}

// RecentlyViewedStore keeps a capped, most-recent-first list of products per
// visitor. Appending a product already in the list moves it to the front.
type RecentlyViewedStore interface {
	Get(ctx context.Context, key string) ([]models.RecentlyViewedEntry, error)
	Append(ctx context.Context, key string, entry models.RecentlyViewedEntry, maxSize int) error
}
