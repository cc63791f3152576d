package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"vitrina/carousel"
	"vitrina/logger"
)

// ImagePreloader warms the image cache in the background and reports
// completion to a carousel controller
// Implements carousel.Preloader
type ImagePreloader struct {
	images  ImageServiceInterface
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	sem    *semaphore.Weighted
}

// Ensure ImagePreloader implements carousel.Preloader
var _ carousel.Preloader = (*ImagePreloader)(nil)

// NewImagePreloader creates a preloader running at most concurrency fetches
// at a time, each bounded by timeout
func NewImagePreloader(images ImageServiceInterface, concurrency int, timeout time.Duration) *ImagePreloader {
	if concurrency < 1 {
		concurrency = 4
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ImagePreloader{
		images:  images,
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
		sem:     semaphore.NewWeighted(int64(concurrency)),
	}
}

// Preload fetches url on a background goroutine and calls done with the result
func (p *ImagePreloader) Preload(url string, done func(err error)) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		if err := p.sem.Acquire(p.ctx, 1); err != nil {
			done(err)
			return
		}
		defer p.sem.Release(1)

		ctx, cancel := context.WithTimeout(p.ctx, p.timeout)
		defer cancel()

		start := time.Now()
		err := p.images.Warm(ctx, url)
		if err != nil {
			logger.L().Warnf("❌ Preload %s failed: %v", url, err)
		} else {
			logger.L().Debugf("📥 Preloaded %s in %s", url, time.Since(start))
		}
		done(err)
	}()
}

// Close cancels pending preloads and waits for them to finish
func (p *ImagePreloader) Close() {
	p.cancel()
	p.wg.Wait()
}
