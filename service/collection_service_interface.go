package service

import (
	"context"

	"vitrina/pagination"
)

// CollectionServiceInterface defines the contract for collection page loading
type CollectionServiceInterface interface {
	LoadPage(ctx context.Context, handle string, req pagination.Request) (*CollectionPage, error)
	Config() pagination.Config
}
