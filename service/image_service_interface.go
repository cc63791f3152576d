package service

import "context"

// ImageServiceInterface defines the contract for resized image delivery
type ImageServiceInterface interface {
	GetResized(ctx context.Context, src string, width int) ([]byte, error)
	Warm(ctx context.Context, imageURL string) error
}
