package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"vitrina/models"
)

// DriveService handles Google Drive API operations
// Implements DriveServiceInterface
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance.
// Pass option.WithCredentialsFile with the Service Account JSON path in production.
func NewDriveService(ctx context.Context, opts ...option.ClientOption) (*DriveService, error) {
	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveService{client: driveService}, nil
}

var imageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

// ListBanners lists the image files in a Google Drive folder, ordered by name
func (ds *DriveService) ListBanners(ctx context.Context, folderID string) ([]models.Banner, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", strings.ReplaceAll(folderID, "'", `\'`))

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Context(ctx).
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType, description)")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to list files: %v", ErrUpstream, err)
		}
		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}

	sort.SliceStable(allFiles, func(i, j int) bool { return allFiles[i].Name < allFiles[j].Name })

	banners := make([]models.Banner, 0, len(allFiles))
	for _, file := range allFiles {
		if !imageMimeTypes[strings.ToLower(file.MimeType)] {
			continue
		}
		alt := file.Description
		if alt == "" {
			alt = strings.TrimSuffix(file.Name, fileExt(file.Name))
		}
		banners = append(banners, models.Banner{
			ID:      file.Id,
			URL:     fmt.Sprintf("https://drive.google.com/uc?export=view&id=%s", file.Id),
			AltText: alt,
		})
	}
	return banners, nil
}

func fileExt(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[i:]
	}
	return ""
}
