package controller

import (
	"net/http"
	"strconv"
	"time"

	"vitrina/models"
	"vitrina/service"
)

var reportKinds = map[string]bool{
	models.EventProductView:    true,
	models.EventCollectionView: true,
	models.EventSearch:         true,
	models.EventAddToCart:      true,
}

// AnalyticsController serves storefront reports
type AnalyticsController struct {
	analytics service.AnalyticsServiceInterface
	now       func() time.Time
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analytics service.AnalyticsServiceInterface) *AnalyticsController {
	return &AnalyticsController{analytics: analytics, now: time.Now}
}

// TopResources handles GET /admin/analytics/top?kind=product_view&days=7&limit=10
func (c *AnalyticsController) TopResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind := q.Get("kind")
	if kind == "" {
		kind = models.EventProductView
	}
	if !reportKinds[kind] {
		http.Error(w, "Invalid kind. Valid kinds: product_view, collection_view, search, add_to_cart", http.StatusBadRequest)
		return
	}
	days := boundedInt(q.Get("days"), 7, 1, 365)
	limit := boundedInt(q.Get("limit"), 10, 1, 100)

	rows, err := c.analytics.TopResources(r.Context(), kind, c.now().AddDate(0, 0, -days), limit)
	if err != nil {
		writeError(w, "TopResources", "Failed to load report", err)
		return
	}
	if rows == nil {
		rows = []models.ResourceViewCount{}
	}
	writeJSON(w, "TopResources", http.StatusOK, map[string]any{
		"kind":  kind,
		"days":  days,
		"items": rows,
	})
}

// boundedInt parses raw, falling back to def when it is missing or out of [lo, hi]
func boundedInt(raw string, def, lo, hi int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return def
	}
	return n
}
