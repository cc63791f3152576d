package controller

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"vitrina/models"
	"vitrina/pagination"
	"vitrina/service"
)

type fakeCollections struct {
	cfg   pagination.Config
	col   *models.Collection
	err   error
	calls []pagination.Request
}

func (f *fakeCollections) LoadPage(_ context.Context, handle string, req pagination.Request) (*service.CollectionPage, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	page := pagination.Paginate(f.col.Products.Nodes, f.cfg, req, f.col.Products.PageInfo)
	return &service.CollectionPage{Collection: f.col, Page: page, Request: req}, nil
}

func (f *fakeCollections) Config() pagination.Config { return f.cfg }

type fakeProducts struct {
	page     *service.ProductPage
	err      error
	selected url.Values
}

func (f *fakeProducts) LoadProduct(_ context.Context, _ string, selected url.Values) (*service.ProductPage, error) {
	f.selected = selected
	return f.page, f.err
}

type fakeGallery struct {
	state    *service.GalleryState
	err      error
	sessions []string
	index    int
}

func (f *fakeGallery) State(_ context.Context, sessionID, _ string, _ url.Values) (*service.GalleryState, error) {
	f.sessions = append(f.sessions, sessionID)
	return f.state, f.err
}

func (f *fakeGallery) Switch(_ context.Context, sessionID, _ string, _ url.Values, index int) (*service.GalleryState, error) {
	f.sessions = append(f.sessions, sessionID)
	f.index = index
	return f.state, f.err
}

type fakeSearch struct {
	result *models.SearchResult
	err    error
}

func (f *fakeSearch) Search(_ context.Context, q string) (*models.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return &models.SearchResult{}, nil
	}
	r := *f.result
	r.Query = q
	return &r, nil
}

type fakeCarts struct {
	carts  map[string]*models.Cart
	err    error
	added  []models.CartLineInput
	cartID string
}

func (f *fakeCarts) GetCart(_ context.Context, id string) (*models.Cart, error) {
	if id == "" {
		return &models.Cart{}, nil
	}
	c, ok := f.carts[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return c, nil
}

func (f *fakeCarts) AddLine(_ context.Context, cartID string, line models.CartLineInput) (*models.Cart, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.added = append(f.added, line)
	f.cartID = cartID
	id := cartID
	if id == "" {
		id = "gid://cart/new"
	}
	return &models.Cart{ID: id, TotalQuantity: line.Quantity}, nil
}

type fakeImages struct {
	data   []byte
	err    error
	src    string
	width  int
	warmed []string
}

func (f *fakeImages) GetResized(_ context.Context, src string, width int) ([]byte, error) {
	f.src, f.width = src, width
	return f.data, f.err
}

func (f *fakeImages) Warm(_ context.Context, imageURL string) error {
	f.warmed = append(f.warmed, imageURL)
	return nil
}

type fakeMenus struct{ items []models.MenuItem }

func (f *fakeMenus) Items(context.Context) []models.MenuItem { return f.items }

type fakeAnalytics struct {
	mu     sync.Mutex
	events []models.AnalyticsEvent
	top    []models.ResourceViewCount
	since  time.Time
	kind   string
	limit  int
	err    error
}

func (f *fakeAnalytics) Track(e models.AnalyticsEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

func (f *fakeAnalytics) TopResources(_ context.Context, kind string, since time.Time, limit int) ([]models.ResourceViewCount, error) {
	f.kind, f.since, f.limit = kind, since, limit
	return f.top, f.err
}

func (f *fakeAnalytics) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Kind
	}
	return out
}

type fakeRecent struct {
	recorded []string
	entries  []models.RecentlyViewedEntry
}

func (f *fakeRecent) Record(_ context.Context, sessionID string, product *models.Product, _ *models.Image) {
	f.recorded = append(f.recorded, sessionID+"/"+product.Handle)
}

func (f *fakeRecent) List(context.Context, string, ...string) []models.RecentlyViewedEntry {
	return f.entries
}

func cards(n int) []models.ProductCard {
	out := make([]models.ProductCard, n)
	for i := range out {
		out[i] = models.ProductCard{
			ID:     fmt.Sprintf("gid://product/%d", i+1),
			Handle: fmt.Sprintf("product-%d", i+1),
			Title:  fmt.Sprintf("Product %d", i+1),
			PriceRange: models.PriceRange{
				MinVariantPrice: models.Money{Amount: "10.0", CurrencyCode: "USD"},
			},
		}
	}
	return out
}
