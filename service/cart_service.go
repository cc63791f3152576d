package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vitrina/logger"
	"vitrina/models"
)

const maxLineQuantity = 99

// CartService manages the visitor's remote cart
type CartService struct {
	client StorefrontClientInterface
}

// NewCartService creates a new CartService instance
func NewCartService(client StorefrontClientInterface) *CartService {
	return &CartService{client: client}
}

// GetCart returns the cart, or an empty cart when cartID is blank
func (s *CartService) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	if strings.TrimSpace(cartID) == "" {
		return &models.Cart{Lines: []models.CartLine{}}, nil
	}
	cart, err := s.client.Cart(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

// AddLine adds a line, creating the cart when cartID is blank or no longer
// exists. The returned cart carries the id to store in the cart cookie.
func (s *CartService) AddLine(ctx context.Context, cartID string, line models.CartLineInput) (*models.Cart, error) {
	line.MerchandiseID = strings.TrimSpace(line.MerchandiseID)
	if line.MerchandiseID == "" {
		return nil, fmt.Errorf("merchandiseId is required: %w", ErrInvalidInput)
	}
	if line.Quantity < 1 || line.Quantity > maxLineQuantity {
		return nil, fmt.Errorf("quantity must be between 1 and %d: %w", maxLineQuantity, ErrInvalidInput)
	}
	lines := []models.CartLineInput{line}

	if strings.TrimSpace(cartID) != "" {
		cart, err := s.client.CartLinesAdd(ctx, cartID, lines)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("failed to add cart line: %w", err)
		}
		logger.L().Infof("🛒 AddLine: cart %s expired, creating a new one", cartID)
	}

	cart, err := s.client.CartCreate(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return cart, nil
}
