package service

import (
	"context"

	"vitrina/models"
)

// MenuServiceInterface defines the contract for the navigation menu
type MenuServiceInterface interface {
	Items(ctx context.Context) []models.MenuItem
}
