package service

import (
	"context"

	"vitrina/models"
	"vitrina/pagination"
)

// StorefrontClientInterface defines the contract for storefront API operations
type StorefrontClientInterface interface {
	Collection(ctx context.Context, handle string, q pagination.QueryVars) (*models.Collection, error)
	Product(ctx context.Context, handle string) (*models.Product, error)
	Recommendations(ctx context.Context, handle string) ([]models.ProductCard, error)
	PredictiveSearch(ctx context.Context, query string, limit int) (*models.SearchResult, error)
	Menu(ctx context.Context, handle string) (*models.Menu, error)
	Cart(ctx context.Context, cartID string) (*models.Cart, error)
	CartCreate(ctx context.Context, lines []models.CartLineInput) (*models.Cart, error)
	CartLinesAdd(ctx context.Context, cartID string, lines []models.CartLineInput) (*models.Cart, error)
}
