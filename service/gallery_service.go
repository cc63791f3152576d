package service

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"vitrina/carousel"
	"vitrina/clock"
	"vitrina/logger"
	"vitrina/models"
	"vitrina/utils"
)

const defaultMaxGallerySessions = 10000

// GalleryState is the JSON view of one visitor's product image carousel
type GalleryState struct {
	carousel.State
	Images         []models.Image `json:"images"`
	DisplayedImage *models.Image  `json:"displayedImage,omitempty"`
	Thumbnails     []models.Image `json:"thumbnails,omitempty"`
}

// GalleryService keeps a carousel controller per visitor and product.
// Sessions idle for longer than ttl are closed by a periodic sweep.
// Implements GalleryServiceInterface
type GalleryService struct {
	products    ProductServiceInterface
	preloader   carousel.Preloader
	sched       clock.Scheduler
	cfg         carousel.Config
	ttl         time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*gallerySession
	cleanup  clock.Timer
	closed   bool
}

type gallerySession struct {
	ctrl       *carousel.Controller
	optionsKey string
	images     []models.Image
	lastSeen   time.Time
}

// Ensure GalleryService implements GalleryServiceInterface
var _ GalleryServiceInterface = (*GalleryService)(nil)

// NewGalleryService creates a GalleryService and schedules its cleanup sweep
func NewGalleryService(products ProductServiceInterface, preloader carousel.Preloader, sched clock.Scheduler, cfg carousel.Config, ttl time.Duration) *GalleryService {
	s := &GalleryService{
		products:    products,
		preloader:   preloader,
		sched:       sched,
		cfg:         cfg,
		ttl:         ttl,
		maxSessions: defaultMaxGallerySessions,
		now:         time.Now,
		sessions:    make(map[string]*gallerySession),
	}
	s.mu.Lock()
	s.scheduleCleanupLocked()
	s.mu.Unlock()
	return s
}

// State returns the carousel state, mounting a controller on first use
func (s *GalleryService) State(ctx context.Context, sessionID, handle string, selected url.Values) (*GalleryState, error) {
	sess, images, err := s.session(ctx, sessionID, handle, selected)
	if err != nil {
		return nil, err
	}
	return s.view(sess, images), nil
}

// Switch asks the visitor's carousel to show image index
func (s *GalleryService) Switch(ctx context.Context, sessionID, handle string, selected url.Values, index int) (*GalleryState, error) {
	sess, images, err := s.session(ctx, sessionID, handle, selected)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(images) {
		return nil, fmt.Errorf("image index %d out of range [0,%d): %w", index, len(images), ErrInvalidInput)
	}
	sess.ctrl.SwitchTo(index)
	return s.view(sess, images), nil
}

// session finds or mounts the controller for the visitor and product. A
// different option selection reloads the image list and remounts it. The
// returned images are the session's list as of the lookup; later remounts
// replace sess.images and never mutate the returned slice.
func (s *GalleryService) session(ctx context.Context, sessionID, handle string, selected url.Values) (*gallerySession, []models.Image, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, nil, fmt.Errorf("gallery session id: %w", ErrInvalidInput)
	}
	key := sessionID + "|" + handle
	optionsKey := selected.Encode()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, nil, fmt.Errorf("gallery service closed")
	}
	sess, ok := s.sessions[key]
	if ok && sess.optionsKey == optionsKey {
		sess.lastSeen = s.now()
		images := sess.images
		s.mu.Unlock()
		return sess, images, nil
	}
	s.mu.Unlock()

	page, err := s.products.LoadProduct(ctx, handle, selected)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, nil, fmt.Errorf("gallery service closed")
	}
	// Another request may have mounted the session meanwhile
	sess, ok = s.sessions[key]
	switch {
	case ok && sess.optionsKey == optionsKey:
	case ok:
		sess.ctrl.SetImages(page.Images)
		sess.images = cloneImages(page.Images)
		sess.optionsKey = optionsKey
	default:
		s.evictOldestLocked()
		sess = &gallerySession{
			ctrl:       carousel.New(page.Images, s.preloader, s.sched, s.cfg),
			optionsKey: optionsKey,
			images:     cloneImages(page.Images),
		}
		s.sessions[key] = sess
		logger.L().Debugf("🎠 Gallery: mounted %s (%d images)", key, len(page.Images))
	}
	sess.lastSeen = s.now()
	return sess, sess.images, nil
}

func (s *GalleryService) view(sess *gallerySession, images []models.Image) *GalleryState {
	st := &GalleryState{
		State:      sess.ctrl.State(),
		Images:     images,
		Thumbnails: proxied(sess.ctrl.Thumbnails()),
	}
	if img, ok := sess.ctrl.DisplayedImage(); ok {
		img.URL = proxyURL(img.URL)
		st.DisplayedImage = &img
	}
	return st
}

// proxied rewrites width-annotated image URLs to the local image proxy,
// which the preloader has warmed
func proxied(images []models.Image) []models.Image {
	if images == nil {
		return nil
	}
	out := make([]models.Image, len(images))
	for i, img := range images {
		img.URL = proxyURL(img.URL)
		out[i] = img
	}
	return out
}

func cloneImages(images []models.Image) []models.Image {
	return append([]models.Image(nil), images...)
}

func proxyURL(raw string) string {
	src, width := utils.SplitImageWidth(raw)
	return utils.ProxiedImageURL(src, width)
}

// Sweep closes sessions idle for longer than ttl and returns how many
func (s *GalleryService) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for key, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			sess.ctrl.Close()
			delete(s.sessions, key)
			removed++
		}
	}
	if removed > 0 {
		logger.L().Debugf("🧹 Gallery: closed %d idle sessions, %d remain", removed, len(s.sessions))
	}
	return removed
}

// Len returns the number of live sessions
func (s *GalleryService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops the sweep and every controller
func (s *GalleryService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.cleanup != nil {
		s.cleanup.Stop()
	}
	for key, sess := range s.sessions {
		sess.ctrl.Close()
		delete(s.sessions, key)
	}
}

func (s *GalleryService) scheduleCleanupLocked() {
	interval := s.ttl / 2
	if interval <= 0 {
		interval = time.Minute
	}
	s.cleanup = s.sched.AfterFunc(interval, func() {
		s.Sweep()
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.closed {
			s.scheduleCleanupLocked()
		}
	})
}

// evictOldestLocked makes room for one more session
func (s *GalleryService) evictOldestLocked() {
	if len(s.sessions) < s.maxSessions {
		return
	}
	keys := make([]string, 0, len(s.sessions))
	for k := range s.sessions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return s.sessions[keys[i]].lastSeen.Before(s.sessions[keys[j]].lastSeen)
	})
	for _, k := range keys[:len(s.sessions)-s.maxSessions+1] {
		s.sessions[k].ctrl.Close()
		delete(s.sessions, k)
	}
}
