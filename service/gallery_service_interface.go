package service

import (
	"context"
	"net/url"
)

// GalleryServiceInterface defines the contract for per-visitor image carousels
type GalleryServiceInterface interface {
	State(ctx context.Context, sessionID, handle string, selected url.Values) (*GalleryState, error)
	Switch(ctx context.Context, sessionID, handle string, selected url.Values, index int) (*GalleryState, error)
}
