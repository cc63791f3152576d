package service

import (
	"context"

	"vitrina/models"
)

// CartServiceInterface defines the contract for cart operations
type CartServiceInterface interface {
	GetCart(ctx context.Context, cartID string) (*models.Cart, error)
	AddLine(ctx context.Context, cartID string, line models.CartLineInput) (*models.Cart, error)
}

// Ensure CartService implements CartServiceInterface
var _ CartServiceInterface = (*CartService)(nil)
