package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/singleflight"

	"vitrina/logger"
	"vitrina/utils"
)

const (
	// Quality settings
	qualitySmall = 60
	qualityLarge = 75
	// Widths at or below this use the small quality
	smallWidth = 300
	// MaxImageWidth is the largest width the proxy will produce
	MaxImageWidth = 2048
	// Largest upstream image accepted
	maxSourceBytes = 20 << 20
)

// ImageService fetches remote images, resizes them to a width and caches
// the JPEG result on disk
// Implements ImageServiceInterface
type ImageService struct {
	cacheDir   string
	httpClient *http.Client
	group      singleflight.Group
}

// Ensure ImageService implements ImageServiceInterface
var _ ImageServiceInterface = (*ImageService)(nil)

// NewImageService creates an ImageService caching under cacheDir
func NewImageService(cacheDir string, httpClient *http.Client) *ImageService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &ImageService{cacheDir: cacheDir, httpClient: httpClient}
}

// EnsureCacheDir ensures the cache directory exists, creates it if it doesn't
func (s *ImageService) EnsureCacheDir() error {
	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// CachePath returns the cache file path for src at width
func (s *ImageService) CachePath(src string, width int) string {
	sum := sha256.Sum256([]byte(src))
	filename := fmt.Sprintf("%s_w%d.jpg", hex.EncodeToString(sum[:12]), width)
	return filepath.Join(s.cacheDir, filename)
}

// IsCached reports whether src at width is already on disk
func (s *ImageService) IsCached(src string, width int) bool {
	_, err := os.Stat(s.CachePath(src, width))
	return err == nil
}

// GetResized returns src resized to width as JPEG, from cache when possible.
// Concurrent requests for the same image share one fetch.
func (s *ImageService) GetResized(ctx context.Context, src string, width int) ([]byte, error) {
	if err := validateImageRequest(src, width); err != nil {
		return nil, err
	}

	cachePath := s.CachePath(src, width)
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	v, err, shared := s.group.Do(cachePath, func() (any, error) {
		raw, err := s.fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		optimized, err := OptimizeImage(raw, width)
		if err != nil {
			return nil, err
		}
		if err := saveToCache(cachePath, optimized); err != nil {
			// Serve the image anyway; the next request retries the write.
			logger.L().Warnf("⚠️ GetResized: %v", err)
		}
		return optimized, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.L().Debugf("🔁 GetResized: shared fetch for %s", src)
	}
	return v.([]byte), nil
}

// Warm makes sure the image behind a width-annotated URL is cached
func (s *ImageService) Warm(ctx context.Context, imageURL string) error {
	src, width := utils.SplitImageWidth(imageURL)
	if width == 0 {
		width = MaxImageWidth
	}
	_, err := s.GetResized(ctx, src, width)
	return err
}

func (s *ImageService) fetch(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch image: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("image %s: %w", src, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: image status %d", ErrUpstream, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read image: %v", ErrUpstream, err)
	}
	if len(data) > maxSourceBytes {
		return nil, fmt.Errorf("image larger than %d bytes: %w", maxSourceBytes, ErrInvalidInput)
	}
	return data, nil
}

func validateImageRequest(src string, width int) error {
	u, err := url.Parse(src)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("image src %q: %w", src, ErrInvalidInput)
	}
	if width < 1 || width > MaxImageWidth {
		return fmt.Errorf("image width %d: %w", width, ErrInvalidInput)
	}
	return nil
}

// ParseImageWidth parses the width parameter of the image proxy
func ParseImageWidth(raw string) (int, error) {
	w, err := strconv.Atoi(raw)
	if err != nil || w < 1 || w > MaxImageWidth {
		return 0, fmt.Errorf("width %q: %w", raw, ErrInvalidInput)
	}
	return w, nil
}

// saveToCache saves an image to the cache
func saveToCache(cachePath string, imageData []byte) error {
	// Ensure parent directory exists
	dir := filepath.Dir(cachePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	// Write through a temp file so readers never see a partial image
	tmp, err := os.CreateTemp(dir, ".img-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if _, err := tmp.Write(imageData); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), cachePath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	logger.L().Debugf("✓ Image cached: %s", cachePath)
	return nil
}

// OptimizeImage converts imageData to JPEG no wider than width, keeping the
// aspect ratio. Images already narrower are re-encoded without upscaling.
func OptimizeImage(imageData []byte, width int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	quality := qualityLarge
	if width <= smallWidth {
		quality = qualitySmall
	}

	bounds := img.Bounds()
	var resized image.Image = img
	if bounds.Dx() > width {
		// Height 0 keeps the aspect ratio
		logger.L().Debugf("🔄 Resizing %s image: %dx%d -> width %d", format, bounds.Dx(), bounds.Dy(), width)
		resized = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
