// Package carousel implements the product image presentation state machine.
//
// A Controller tracks which image the shopper asked for (active), which image
// is actually rendered (display) and which one is waiting on its preload
// (pending). The rendered image only changes once the target URL has been
// confirmed loaded, through a fade-out, swap, fade-in sequence driven by an
// injected clock.Scheduler.
//
// All state changes are serialized behind a mutex. The controller never
// calls the Preloader or fires callbacks while holding it, so preloaders
// may complete synchronously.
package carousel

import (
	"sort"
	"sync"
	"time"

	"vitrina/clock"
	"vitrina/models"
	"vitrina/utils"
)

// Phase is the visual transition state.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseFadeOut Phase = "fade-out"
	PhaseFadeIn  Phase = "fade-in"
)

// NoPending is the PendingIndex value when nothing is waiting.
const NoPending = -1

// Preloader loads a URL out of band and reports completion through done.
// done may be called on any goroutine, including synchronously.
type Preloader interface {
	Preload(url string, done func(err error))
}

// PreloaderFunc adapts a function to Preloader.
type PreloaderFunc func(url string, done func(err error))

// Preload calls f.
func (f PreloaderFunc) Preload(url string, done func(err error)) { f(url, done) }

// Config holds the transition timings and image resolutions.
type Config struct {
	FadeOutDelay   time.Duration
	FadeInDelay    time.Duration
	SweepDelay     time.Duration
	ThumbnailDelay time.Duration
	PreloadWidth   int
	ThumbnailWidth int
	PreloadRetries int
}

// DefaultConfig returns the timings used by the product page.
func DefaultConfig() Config {
	return Config{
		FadeOutDelay:   150 * time.Millisecond,
		FadeInDelay:    150 * time.Millisecond,
		SweepDelay:     1500 * time.Millisecond,
		ThumbnailDelay: 400 * time.Millisecond,
		PreloadWidth:   800,
		ThumbnailWidth: 160,
		PreloadRetries: 1,
	}
}

// State is a snapshot of the controller.
type State struct {
	ActiveIndex       int      `json:"activeIndex"`
	DisplayIndex      int      `json:"displayIndex"`
	PendingIndex      int      `json:"pendingIndex"`
	Phase             Phase    `json:"phase"`
	LoadedURLs        []string `json:"loadedUrls"`
	ThumbnailsVisible bool     `json:"thumbnailsVisible"`
}

// Controller is the carousel state machine for one image list.
type Controller struct {
	mu        sync.Mutex
	cfg       Config
	sched     clock.Scheduler
	preloader Preloader

	images   []models.Image
	active   int
	display  int
	pending  int
	phase    Phase
	loaded   map[string]struct{}
	inflight map[string]int // url -> attempts made

	transition clock.Timer
	target     int // index the running transition moves to
	generation int
	sweep      clock.Timer
	thumbs     clock.Timer
	thumbsOn   bool
	closed     bool
}

// New mounts a controller for images. The first image is rendered eagerly;
// thumbnails and the background sweep are scheduled.
func New(images []models.Image, preloader Preloader, sched clock.Scheduler, cfg Config) *Controller {
	c := &Controller{
		cfg:       cfg,
		sched:     sched,
		preloader: preloader,
		pending:   NoPending,
		phase:     PhaseIdle,
		loaded:    make(map[string]struct{}),
		inflight:  make(map[string]int),
	}
	c.images = cloneImages(images)

	c.mu.Lock()
	c.thumbs = sched.AfterFunc(cfg.ThumbnailDelay, c.showThumbnails)
	c.scheduleSweepLocked()
	c.mu.Unlock()
	return c
}

// SwitchTo requests image index. The active index changes immediately; the
// displayed image follows once the image is loaded.
func (c *Controller) SwitchTo(index int) {
	c.mu.Lock()
	if c.closed || len(c.images) == 0 || index < 0 || index >= len(c.images) || index == c.active {
		c.mu.Unlock()
		return
	}
	c.active = index
	c.pending = index
	if c.transition != nil && c.target != index {
		// A newer target supersedes the running fade.
		c.cancelTransitionLocked()
		c.phase = PhaseIdle
	}

	url := c.urlLocked(index)
	_, loaded := c.loaded[url]
	_, busy := c.inflight[url]
	var start []string
	switch {
	case loaded || index == c.display:
		c.evaluateLocked()
	case !busy:
		c.inflight[url] = 1
		start = append(start, url)
	}
	c.mu.Unlock()

	c.preload(start)
}

// SetImages replaces the image list, as when the selected variant changes.
// It behaves like a remount: indices reset to the first image and any
// transition is dropped. Loaded URLs are kept.
func (c *Controller) SetImages(images []models.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.images = cloneImages(images)
	c.active, c.display, c.pending = 0, 0, NoPending
	c.cancelTransitionLocked()
	c.phase = PhaseIdle
	c.scheduleSweepLocked()
}

// MarkLoaded records url as loaded and re-evaluates the pending switch.
// Marking an already loaded URL has no effect on the loaded set.
func (c *Controller) MarkLoaded(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	delete(c.inflight, url)
	c.loaded[url] = struct{}{}
	c.evaluateLocked()
}

// State returns a snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	urls := make([]string, 0, len(c.loaded))
	for u := range c.loaded {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return State{
		ActiveIndex:       c.active,
		DisplayIndex:      c.display,
		PendingIndex:      c.pending,
		Phase:             c.phase,
		LoadedURLs:        urls,
		ThumbnailsVisible: c.thumbsOn,
	}
}

// DisplayedImage returns the rendered image with its URL at preload width.
func (c *Controller) DisplayedImage() (models.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.images) == 0 {
		return models.Image{}, false
	}
	img := c.images[c.display]
	img.URL = c.urlLocked(c.display)
	return img, true
}

// Thumbnails returns the image list at thumbnail width, or nil while
// thumbnails are still deferred.
func (c *Controller) Thumbnails() []models.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.thumbsOn {
		return nil
	}
	out := make([]models.Image, len(c.images))
	for i, img := range c.images {
		img.URL = utils.ImageURLWithWidth(img.URL, c.cfg.ThumbnailWidth)
		out[i] = img
	}
	return out
}

// ThumbnailsVisible reports whether the deferred thumbnail strip is shown.
func (c *Controller) ThumbnailsVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.thumbsOn
}

// Close stops every timer. Callbacks arriving afterwards are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cancelTransitionLocked()
	if c.sweep != nil {
		c.sweep.Stop()
	}
	if c.thumbs != nil {
		c.thumbs.Stop()
	}
}

func (c *Controller) urlLocked(i int) string {
	return utils.ImageURLWithWidth(c.images[i].URL, c.cfg.PreloadWidth)
}

// evaluateLocked starts a transition towards pending when its image is
// loaded, or clears pending when it is already displayed.
func (c *Controller) evaluateLocked() {
	if c.pending == NoPending || c.pending >= len(c.images) {
		return
	}
	if c.transition != nil && c.target == c.pending {
		return
	}
	if c.pending == c.display {
		c.pending = NoPending
		c.cancelTransitionLocked()
		c.phase = PhaseIdle
		return
	}
	if _, ok := c.loaded[c.urlLocked(c.pending)]; !ok {
		return
	}

	c.cancelTransitionLocked()
	c.generation++
	gen := c.generation
	target := c.pending
	c.target = target
	c.phase = PhaseFadeOut
	c.transition = c.sched.AfterFunc(c.cfg.FadeOutDelay, func() { c.swap(gen, target) })
}

func (c *Controller) swap(gen, target int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation {
		return
	}
	c.display = target
	c.phase = PhaseFadeIn
	c.transition = c.sched.AfterFunc(c.cfg.FadeInDelay, func() { c.finish(gen, target) })
}

func (c *Controller) finish(gen, target int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation {
		return
	}
	c.phase = PhaseIdle
	c.transition = nil
	if c.pending == target {
		c.pending = NoPending
	}
}

func (c *Controller) cancelTransitionLocked() {
	if c.transition != nil {
		c.transition.Stop()
		c.transition = nil
	}
	c.generation++
}

func (c *Controller) scheduleSweepLocked() {
	if c.sweep != nil {
		c.sweep.Stop()
	}
	c.sweep = c.sched.AfterFunc(c.cfg.SweepDelay, c.runSweep)
}

// runSweep preloads every image that is neither loaded nor in flight.
func (c *Controller) runSweep() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	var start []string
	for i := range c.images {
		url := c.urlLocked(i)
		if _, ok := c.loaded[url]; ok {
			continue
		}
		if _, busy := c.inflight[url]; busy {
			continue
		}
		c.inflight[url] = 1
		start = append(start, url)
	}
	c.mu.Unlock()

	c.preload(start)
}

func (c *Controller) showThumbnails() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.thumbsOn = true
	}
}

func (c *Controller) preload(urls []string) {
	for _, url := range urls {
		c.preloader.Preload(url, func(err error) { c.preloadDone(url, err) })
	}
}

func (c *Controller) preloadDone(url string, err error) {
	if err == nil {
		c.MarkLoaded(url)
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if _, ok := c.loaded[url]; ok {
		// A late failure for a URL another attempt already loaded.
		c.mu.Unlock()
		return
	}
	attempts := c.inflight[url]
	if attempts > c.cfg.PreloadRetries {
		// Give up; the switch to this image never completes.
		delete(c.inflight, url)
		c.mu.Unlock()
		return
	}
	c.inflight[url] = attempts + 1
	c.mu.Unlock()

	c.preload([]string{url})
}

func cloneImages(images []models.Image) []models.Image {
	out := make([]models.Image, len(images))
	copy(out, images)
	return out
}
