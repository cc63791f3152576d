package models

import "time"

// Analytics event kinds
const (
	EventPageView       = "page_view"
	EventProductView    = "product_view"
	EventCollectionView = "collection_view"
	EventSearch         = "search"
	EventAddToCart      = "add_to_cart"
)

// AnalyticsEvent is a storefront interaction recorded for reporting
type AnalyticsEvent struct {
	ID             int64     `json:"id"`
	SessionID      string    `json:"sessionId"`
	Kind           string    `json:"kind"`
	ResourceHandle string    `json:"resourceHandle"`
	Path           string    `json:"path"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// ResourceViewCount is a reporting row: how often a resource was viewed
type ResourceViewCount struct {
	ResourceHandle string `json:"resourceHandle"`
	Views          int64  `json:"views"`
}
