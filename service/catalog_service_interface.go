package service

import "context"

// CatalogServiceInterface defines the contract for printable catalogs
type CatalogServiceInterface interface {
	RenderCatalogHTML(ctx context.Context, handle string) (string, error)
	GeneratePDF(ctx context.Context, handle string) ([]byte, error)
}
