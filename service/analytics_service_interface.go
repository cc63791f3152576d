package service

import (
	"context"
	"time"

	"vitrina/models"
)

// AnalyticsServiceInterface defines the contract for event recording and reporting
type AnalyticsServiceInterface interface {
	Track(e models.AnalyticsEvent)
	TopResources(ctx context.Context, kind string, since time.Time, limit int) ([]models.ResourceViewCount, error)
}

// Ensure AnalyticsService implements AnalyticsServiceInterface
var _ AnalyticsServiceInterface = (*AnalyticsService)(nil)
