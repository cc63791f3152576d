package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vitrina/logger"
	"vitrina/models"
	"vitrina/pagination"
)

var (
	// ErrNotFound is returned when the requested resource does not exist
	ErrNotFound = errors.New("not found")
	// ErrUpstream is returned when the storefront API fails or answers with errors
	ErrUpstream = errors.New("storefront API error")
	// ErrInvalidInput is returned for requests the API would reject
	ErrInvalidInput = errors.New("invalid input")
)

// GraphQLResponse is the standard GraphQL envelope
type GraphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

// GraphQLError is one entry of the errors array
type GraphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// UserError is a mutation validation error
type UserError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// StorefrontClient talks to the commerce storefront GraphQL API
// Implements StorefrontClientInterface
type StorefrontClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// Ensure StorefrontClient implements StorefrontClientInterface
var _ StorefrontClientInterface = (*StorefrontClient)(nil)

// NewStorefrontClient creates a client for endpoint. A nil httpClient gets a
// client with a 15s timeout.
func NewStorefrontClient(endpoint, token string, httpClient *http.Client) *StorefrontClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &StorefrontClient{endpoint: endpoint, token: token, httpClient: httpClient}
}

// do posts query with variables and decodes the data member into out
func do[T any](ctx context.Context, c *StorefrontClient, op, query string, vars map[string]any) (T, error) {
	var zero T
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return zero, fmt.Errorf("%s: failed to encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return zero, fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, fmt.Errorf("%s: %w: %v", op, ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return zero, fmt.Errorf("%s: %w: failed to read response: %v", op, ErrUpstream, err)
	}
	logger.L().Debugf("🛰️ %s: status=%d bytes=%d elapsed=%s", op, resp.StatusCode, len(raw), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, fmt.Errorf("%s: %w: status %d", op, ErrUpstream, resp.StatusCode)
	}

	var envelope GraphQLResponse[T]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return zero, fmt.Errorf("%s: %w: failed to decode response: %v", op, ErrUpstream, err)
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return zero, fmt.Errorf("%s: %w: %s", op, ErrUpstream, strings.Join(msgs, "; "))
	}
	return envelope.Data, nil
}

type productWire struct {
	ID              string                            `json:"id"`
	Handle          string                            `json:"handle"`
	Title           string                            `json:"title"`
	Vendor          string                            `json:"vendor"`
	DescriptionHTML string                            `json:"descriptionHtml"`
	Options         []models.ProductOption            `json:"options"`
	PriceRange      models.PriceRange                 `json:"priceRange"`
	Images          models.Connection[models.Image]   `json:"images"`
	Variants        models.Connection[models.Variant] `json:"variants"`
}

func (w productWire) toModel() *models.Product {
	return &models.Product{
		ID:              w.ID,
		Handle:          w.Handle,
		Title:           w.Title,
		Vendor:          w.Vendor,
		DescriptionHTML: w.DescriptionHTML,
		Options:         w.Options,
		Variants:        w.Variants.Nodes,
		Images:          w.Images.Nodes,
		PriceRange:      w.PriceRange,
	}
}

type menuItemWire struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	URL        string         `json:"url"`
	Type       string         `json:"type"`
	ResourceID string         `json:"resourceId"`
	Resource   *resourceWire  `json:"resource"`
	Items      []menuItemWire `json:"items"`
}

type resourceWire struct {
	ID               string                              `json:"id"`
	AvailableForSale *bool                               `json:"availableForSale"`
	Products         *models.Connection[json.RawMessage] `json:"products"`
}

// available reports whether the linked resource can be shown: products must
// be for sale, collections must hold at least one product.
func (r *resourceWire) available() bool {
	switch {
	case r == nil:
		return false
	case r.AvailableForSale != nil:
		return *r.AvailableForSale
	case r.Products != nil:
		return len(r.Products.Nodes) > 0
	}
	return true
}

func toMenuItems(in []menuItemWire) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(in))
	for _, w := range in {
		out = append(out, models.MenuItem{
			ID:         w.ID,
			Title:      w.Title,
			URL:        w.URL,
			Type:       w.Type,
			ResourceID: w.ResourceID,
			Available:  w.ResourceID == "" || w.Resource.available(),
			Items:      toMenuItems(w.Items),
		})
	}
	return out
}

type cartWire struct {
	ID            string                          `json:"id"`
	CheckoutURL   string                          `json:"checkoutUrl"`
	TotalQuantity int                             `json:"totalQuantity"`
	Cost          models.CartCost                 `json:"cost"`
	Lines         models.Connection[cartLineWire] `json:"lines"`
}

type cartLineWire struct {
	ID          string              `json:"id"`
	Quantity    int                 `json:"quantity"`
	Cost        models.CartLineCost `json:"cost"`
	Merchandise struct {
		ID      string        `json:"id"`
		Title   string        `json:"title"`
		Image   *models.Image `json:"image"`
		Product struct {
			Title string `json:"title"`
		} `json:"product"`
	} `json:"merchandise"`
}

func (w *cartWire) toModel() *models.Cart {
	cart := &models.Cart{
		ID:            w.ID,
		CheckoutURL:   w.CheckoutURL,
		TotalQuantity: w.TotalQuantity,
		Cost:          w.Cost,
		Lines:         make([]models.CartLine, 0, len(w.Lines.Nodes)),
	}
	for _, l := range w.Lines.Nodes {
		cart.Lines = append(cart.Lines, models.CartLine{
			ID:       l.ID,
			Quantity: l.Quantity,
			Cost:     l.Cost,
			Merchandise: models.CartVariant{
				ID:           l.Merchandise.ID,
				Title:        l.Merchandise.Title,
				ProductTitle: l.Merchandise.Product.Title,
				Image:        l.Merchandise.Image,
			},
		})
	}
	return cart
}

type cartPayload struct {
	Cart       *cartWire   `json:"cart"`
	UserErrors []UserError `json:"userErrors"`
}

func (p cartPayload) result(op string) (*models.Cart, error) {
	if len(p.UserErrors) > 0 {
		msgs := make([]string, 0, len(p.UserErrors))
		for _, e := range p.UserErrors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("%s: %w: %s", op, ErrInvalidInput, strings.Join(msgs, "; "))
	}
	if p.Cart == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return p.Cart.toModel(), nil
}

// Collection fetches one chunk of a collection's products
func (c *StorefrontClient) Collection(ctx context.Context, handle string, q pagination.QueryVars) (*models.Collection, error) {
	vars := map[string]any{"handle": handle}
	if q.First != nil {
		vars["first"] = *q.First
	}
	if q.Last != nil {
		vars["last"] = *q.Last
	}
	if q.After != nil {
		vars["after"] = *q.After
	}
	if q.Before != nil {
		vars["before"] = *q.Before
	}

	data, err := do[struct {
		Collection *models.Collection `json:"collection"`
	}](ctx, c, "Collection", collectionQuery, vars)
	if err != nil {
		return nil, err
	}
	if data.Collection == nil {
		return nil, fmt.Errorf("collection %q: %w", handle, ErrNotFound)
	}
	return data.Collection, nil
}

// Product fetches a product with its variants and images
func (c *StorefrontClient) Product(ctx context.Context, handle string) (*models.Product, error) {
	data, err := do[struct {
		Product *productWire `json:"product"`
	}](ctx, c, "Product", productQuery, map[string]any{"handle": handle})
	if err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, fmt.Errorf("product %q: %w", handle, ErrNotFound)
	}
	return data.Product.toModel(), nil
}

// Recommendations fetches products related to the product with handle
func (c *StorefrontClient) Recommendations(ctx context.Context, handle string) ([]models.ProductCard, error) {
	data, err := do[struct {
		ProductRecommendations []models.ProductCard `json:"productRecommendations"`
	}](ctx, c, "Recommendations", recommendationsQuery, map[string]any{"handle": handle})
	if err != nil {
		return nil, err
	}
	return data.ProductRecommendations, nil
}

// PredictiveSearch fetches search-as-you-type suggestions
func (c *StorefrontClient) PredictiveSearch(ctx context.Context, query string, limit int) (*models.SearchResult, error) {
	data, err := do[struct {
		PredictiveSearch *struct {
			Products    []models.ProductCard       `json:"products"`
			Collections []models.CollectionSummary `json:"collections"`
			Queries     []struct {
				Text string `json:"text"`
			} `json:"queries"`
		} `json:"predictiveSearch"`
	}](ctx, c, "PredictiveSearch", predictiveSearchQuery, map[string]any{"query": query, "limit": limit})
	if err != nil {
		return nil, err
	}

	result := &models.SearchResult{Query: query}
	if ps := data.PredictiveSearch; ps != nil {
		result.Products = ps.Products
		result.Collections = ps.Collections
		for _, q := range ps.Queries {
			result.Suggestions = append(result.Suggestions, q.Text)
		}
	}
	return result, nil
}

// Menu fetches a navigation menu with resource availability resolved
func (c *StorefrontClient) Menu(ctx context.Context, handle string) (*models.Menu, error) {
	data, err := do[struct {
		Menu *struct {
			ID     string         `json:"id"`
			Handle string         `json:"handle"`
			Items  []menuItemWire `json:"items"`
		} `json:"menu"`
	}](ctx, c, "Menu", menuQuery, map[string]any{"handle": handle})
	if err != nil {
		return nil, err
	}
	if data.Menu == nil {
		return nil, fmt.Errorf("menu %q: %w", handle, ErrNotFound)
	}
	return &models.Menu{ID: data.Menu.ID, Handle: data.Menu.Handle, Items: toMenuItems(data.Menu.Items)}, nil
}

// Cart fetches a cart by id
func (c *StorefrontClient) Cart(ctx context.Context, cartID string) (*models.Cart, error) {
	data, err := do[struct {
		Cart *cartWire `json:"cart"`
	}](ctx, c, "Cart", cartQuery, map[string]any{"id": cartID})
	if err != nil {
		return nil, err
	}
	if data.Cart == nil {
		return nil, fmt.Errorf("cart %q: %w", cartID, ErrNotFound)
	}
	return data.Cart.toModel(), nil
}

// CartCreate creates a cart holding lines
func (c *StorefrontClient) CartCreate(ctx context.Context, lines []models.CartLineInput) (*models.Cart, error) {
	data, err := do[struct {
		CartCreate cartPayload `json:"cartCreate"`
	}](ctx, c, "CartCreate", cartCreateMutation, map[string]any{"lines": lines})
	if err != nil {
		return nil, err
	}
	return data.CartCreate.result("CartCreate")
}

// CartLinesAdd adds lines to an existing cart
func (c *StorefrontClient) CartLinesAdd(ctx context.Context, cartID string, lines []models.CartLineInput) (*models.Cart, error) {
	data, err := do[struct {
		CartLinesAdd cartPayload `json:"cartLinesAdd"`
	}](ctx, c, "CartLinesAdd", cartLinesAddMutation, map[string]any{"cartId": cartID, "lines": lines})
	if err != nil {
		return nil, err
	}
	return data.CartLinesAdd.result("CartLinesAdd")
}
