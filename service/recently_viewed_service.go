package service

import (
	"context"
	"time"

	"vitrina/logger"
	"vitrina/models"
	"vitrina/repository"
)

// RecentlyViewedService records the products each visitor looks at
type RecentlyViewedService struct {
	store   repository.RecentlyViewedStore
	maxSize int
	now     func() time.Time
}

// NewRecentlyViewedService creates a service keeping maxSize products per visitor
func NewRecentlyViewedService(store repository.RecentlyViewedStore, maxSize int) *RecentlyViewedService {
	return &RecentlyViewedService{store: store, maxSize: maxSize, now: time.Now}
}

// Record adds product to the visitor's list. Failures are logged only.
func (s *RecentlyViewedService) Record(ctx context.Context, sessionID string, product *models.Product, image *models.Image) {
	if sessionID == "" || product == nil {
		return
	}
	entry := models.RecentlyViewedEntry{Handle: product.Handle, Title: product.Title, ViewedAt: s.now()}
	if image != nil {
		entry.ImageURL = image.URL
	}
	if err := s.store.Append(ctx, sessionID, entry, s.maxSize); err != nil {
		logger.L().Warnf("⚠️ RecentlyViewed: failed to record %s: %v", product.Handle, err)
	}
}

// List returns the visitor's products, most recent first, excluding the
// handles in skip
func (s *RecentlyViewedService) List(ctx context.Context, sessionID string, skip ...string) []models.RecentlyViewedEntry {
	if sessionID == "" {
		return nil
	}
	entries, err := s.store.Get(ctx, sessionID)
	if err != nil {
		logger.L().Warnf("⚠️ RecentlyViewed: failed to load list: %v", err)
		return nil
	}
	if len(skip) == 0 {
		return entries
	}
	out := entries[:0]
	for _, e := range entries {
		keep := true
		for _, h := range skip {
			if e.Handle == h {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, e)
		}
	}
	return out
}
