package service

import (
	"context"

	"vitrina/models"
)

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListBanners(ctx context.Context, folderID string) ([]models.Banner, error)
}
