package service

import (
	"context"
	"net/url"
)

// ProductServiceInterface defines the contract for product page loading
type ProductServiceInterface interface {
	LoadProduct(ctx context.Context, handle string, selected url.Values) (*ProductPage, error)
}
