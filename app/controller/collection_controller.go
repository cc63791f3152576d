package controller

import (
	"net/http"
	"net/url"

	"vitrina/logger"
	"vitrina/models"
	"vitrina/pagination"
	"vitrina/service"
)

// CollectionController handles HTTP requests for collection pages
type CollectionController struct {
	collections service.CollectionServiceInterface
	menus       service.MenuServiceInterface
	analytics   service.AnalyticsServiceInterface
}

// NewCollectionController creates a new CollectionController
func NewCollectionController(
	collections service.CollectionServiceInterface,
	menus service.MenuServiceInterface,
	analytics service.AnalyticsServiceInterface,
) *CollectionController {
	return &CollectionController{
		collections: collections,
		menus:       menus,
		analytics:   analytics,
	}
}

// PageLink is one numbered link of the pagination bar
type PageLink struct {
	Number  int    `json:"number"`
	URL     string `json:"url"`
	Current bool   `json:"current"`
}

type collectionView struct {
	Layout
	Collection  *models.Collection
	Items       []models.ProductCard
	Pages       []PageLink
	NextURL     string
	PreviousURL string
	PDFURL      string
}

// CollectionPageResponse is the JSON form of a collection page
type CollectionPageResponse struct {
	Handle      string               `json:"handle"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Items       []models.ProductCard `json:"items"`
	CurrentPage int                  `json:"currentPage"`
	TotalPages  int                  `json:"totalPages"`
	Pages       []PageLink           `json:"pages"`
	NextURL     string               `json:"nextUrl,omitempty"`
	PreviousURL string               `json:"previousUrl,omitempty"`
}

// GetCollection handles GET /collections/{handle}?page=&cursor=&direction=
func (c *CollectionController) GetCollection(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	logger.L().Debugf("📥 GetCollection: %s %s", handle, r.URL.RawQuery)

	req := pagination.ParseRequest(r.URL.Query())
	page, err := c.collections.LoadPage(r.Context(), handle, req)
	if err != nil {
		writeError(w, "GetCollection", "Failed to load collection", err)
		return
	}

	session := sessionID(w, r)
	track(c.analytics, r, session, models.EventCollectionView, page.Collection.Handle)

	path := "/collections/" + url.PathEscape(page.Collection.Handle)
	res := page.Page
	links := make([]PageLink, len(res.Pages))
	for i, t := range res.Pages {
		links[i] = PageLink{Number: t.Page, URL: res.LinkURL(path, t), Current: t.Page == res.CurrentPage}
	}
	var next, prev string
	if res.Next != nil {
		next = res.LinkURL(path, *res.Next)
	}
	if res.Previous != nil {
		prev = res.LinkURL(path, *res.Previous)
	}

	if wantsJSON(r) {
		writeJSON(w, "GetCollection", http.StatusOK, CollectionPageResponse{
			Handle:      page.Collection.Handle,
			Title:       page.Collection.Title,
			Description: page.Collection.Description,
			Items:       res.Items,
			CurrentPage: res.CurrentPage,
			TotalPages:  res.TotalPages,
			Pages:       links,
			NextURL:     next,
			PreviousURL: prev,
		})
		return
	}

	renderPage(w, "GetCollection", "collection.html", collectionView{
		Layout:      newLayout(r.Context(), c.menus, page.Collection.Title, ""),
		Collection:  page.Collection,
		Items:       res.Items,
		Pages:       links,
		NextURL:     next,
		PreviousURL: prev,
		PDFURL:      path + "/catalog.pdf",
	})
}
