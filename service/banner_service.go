package service

import (
	"context"
	"sync"
	"time"

	"vitrina/logger"
	"vitrina/models"
)

// BannerService serves home page banners from a Drive folder, cached for ttl
type BannerService struct {
	drive    DriveServiceInterface
	folderID string
	ttl      time.Duration
	now      func() time.Time

	mu        sync.Mutex
	banners   []models.Banner
	fetchedAt time.Time
}

// NewBannerService creates a BannerService. A nil drive yields no banners.
func NewBannerService(drive DriveServiceInterface, folderID string, ttl time.Duration) *BannerService {
	return &BannerService{drive: drive, folderID: folderID, ttl: ttl, now: time.Now}
}

// Banners returns the cached banners, refreshing them when stale. A failed
// refresh keeps serving the previous list.
func (s *BannerService) Banners(ctx context.Context) []models.Banner {
	if s == nil || s.drive == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fetchedAt.IsZero() && s.now().Sub(s.fetchedAt) < s.ttl {
		return s.banners
	}

	banners, err := s.drive.ListBanners(ctx, s.folderID)
	if err != nil {
		logger.L().Warnf("⚠️ Banners: refresh failed, serving %d cached: %v", len(s.banners), err)
		// Retry on the next request rather than hammering Drive
		s.fetchedAt = s.now()
		return s.banners
	}
	logger.L().Infof("🖼️ Banners: loaded %d from Drive", len(banners))
	s.banners = banners
	s.fetchedAt = s.now()
	return s.banners
}
