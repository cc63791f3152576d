package service

import (
	"context"
	"sync"
	"time"

	"vitrina/logger"
	"vitrina/menu"
	"vitrina/models"
)

// MenuService serves the navigation menu with unavailable resources
// removed. The menu is cached for ttl; a failed refresh keeps the last
// good copy.
type MenuService struct {
	client StorefrontClientInterface
	handle string
	ttl    time.Duration
	now    func() time.Time

	mu        sync.Mutex
	items     []models.MenuItem
	fetchedAt time.Time
}

// Ensure MenuService implements MenuServiceInterface
var _ MenuServiceInterface = (*MenuService)(nil)

// NewMenuService creates a MenuService for the menu with the given handle
func NewMenuService(client StorefrontClientInterface, handle string, ttl time.Duration) *MenuService {
	return &MenuService{client: client, handle: handle, ttl: ttl, now: time.Now}
}

// Items returns the filtered menu tree. It never fails; without a menu the
// header simply has no navigation.
func (s *MenuService) Items(ctx context.Context) []models.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.items != nil && s.now().Sub(s.fetchedAt) < s.ttl {
		return s.items
	}

	m, err := s.client.Menu(ctx, s.handle)
	if err != nil {
		logger.L().Warnf("⚠️ Menu: failed to load %s: %v", s.handle, err)
		return s.items
	}

	items := menu.Localize(menu.Filter(m.Items, menu.ResourceAvailable))
	logger.L().Debugf("🧭 Menu: %s loaded, %d of %d items available", s.handle, menu.Count(items), menu.Count(m.Items))
	s.items = items
	s.fetchedAt = s.now()
	return s.items
}
