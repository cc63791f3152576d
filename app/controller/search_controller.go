package controller

import (
	"net/http"

	"vitrina/models"
	"vitrina/service"
)

// SearchController handles predictive search
type SearchController struct {
	search    service.SearchServiceInterface
	menus     service.MenuServiceInterface
	analytics service.AnalyticsServiceInterface
}

// NewSearchController creates a new SearchController
func NewSearchController(
	search service.SearchServiceInterface,
	menus service.MenuServiceInterface,
	analytics service.AnalyticsServiceInterface,
) *SearchController {
	return &SearchController{search: search, menus: menus, analytics: analytics}
}

type searchView struct {
	Layout
	Result *models.SearchResult
}

// Search handles GET /search?q=
func (c *SearchController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	result, err := c.search.Search(r.Context(), q)
	if err != nil {
		writeError(w, "Search", "Search failed", err)
		return
	}
	if result.Query != "" {
		track(c.analytics, r, sessionID(w, r), models.EventSearch, result.Query)
	}

	if wantsJSON(r) {
		writeJSON(w, "Search", http.StatusOK, result)
		return
	}
	renderPage(w, "Search", "search.html", searchView{
		Layout: newLayout(r.Context(), c.menus, "Search", result.Query),
		Result: result,
	})
}
