package service

import (
	"context"
	"sync"

	"vitrina/models"
	"vitrina/pagination"
)

// fakeClient is an in-memory StorefrontClientInterface
type fakeClient struct {
	mu sync.Mutex

	collections map[string][]models.ProductCard
	products    map[string]*models.Product
	recs        []models.ProductCard
	recsErr     error
	search      *models.SearchResult
	menu        *models.Menu
	carts       map[string]*models.Cart
	err         error

	collectionCalls []pagination.QueryVars
	searchCalls     []string
	created         int
}

var _ StorefrontClientInterface = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		collections: make(map[string][]models.ProductCard),
		products:    make(map[string]*models.Product),
		carts:       make(map[string]*models.Cart),
	}
}

// Collection serves a window over the stored cards, using card IDs as cursors
func (f *fakeClient) Collection(_ context.Context, handle string, q pagination.QueryVars) (*models.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collectionCalls = append(f.collectionCalls, q)
	if f.err != nil {
		return nil, f.err
	}
	all, ok := f.collections[handle]
	if !ok {
		return nil, ErrNotFound
	}

	index := func(id string) int {
		for i, c := range all {
			if c.ID == id {
				return i
			}
		}
		return -1
	}

	start, end := 0, len(all)
	switch {
	case q.After != nil:
		start = index(*q.After) + 1
	case q.Before != nil:
		end = index(*q.Before)
	}
	if q.First != nil && start+*q.First < end {
		end = start + *q.First
	}
	if q.Last != nil && end-*q.Last > start {
		start = end - *q.Last
	}

	nodes := append([]models.ProductCard(nil), all[start:end]...)
	info := models.PageInfo{HasPreviousPage: start > 0, HasNextPage: end < len(all)}
	if len(nodes) > 0 {
		info.StartCursor = nodes[0].ID
		info.EndCursor = nodes[len(nodes)-1].ID
	}
	return &models.Collection{ID: "gid://c/" + handle, Handle: handle, Title: handle,
		Products: models.Connection[models.ProductCard]{Nodes: nodes, PageInfo: info}}, nil
}

func (f *fakeClient) Product(_ context.Context, handle string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[handle]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (f *fakeClient) Recommendations(context.Context, string) ([]models.ProductCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recs, f.recsErr
}

func (f *fakeClient) PredictiveSearch(_ context.Context, query string, _ int) (*models.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls = append(f.searchCalls, query)
	if f.err != nil {
		return nil, f.err
	}
	res := *f.search
	res.Query = query
	return &res, nil
}

func (f *fakeClient) Menu(context.Context, string) (*models.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.menu == nil {
		return nil, ErrNotFound
	}
	return f.menu, f.err
}

func (f *fakeClient) Cart(_ context.Context, id string) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (f *fakeClient) CartCreate(_ context.Context, lines []models.CartLineInput) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	c := &models.Cart{ID: "cart-new"}
	addLines(c, lines)
	f.carts[c.ID] = c
	return c, nil
}

func (f *fakeClient) CartLinesAdd(_ context.Context, id string, lines []models.CartLineInput) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[id]
	if !ok {
		return nil, ErrNotFound
	}
	addLines(c, lines)
	return c, nil
}

func addLines(c *models.Cart, lines []models.CartLineInput) {
	for _, l := range lines {
		c.Lines = append(c.Lines, models.CartLine{Quantity: l.Quantity, Merchandise: models.CartVariant{ID: l.MerchandiseID}})
		c.TotalQuantity += l.Quantity
	}
}
