package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"vitrina/carousel"
	"vitrina/clock"
	"vitrina/models"
)

type fakeImages struct {
	mu     sync.Mutex
	warmed []string
	fail   map[string]error
	block  chan struct{}
	active int
	peak   int
}

func (f *fakeImages) GetResized(context.Context, string, int) ([]byte, error) { return nil, nil }

func (f *fakeImages) Warm(ctx context.Context, url string) error {
	f.mu.Lock()
	f.active++
	if f.active > f.peak {
		f.peak = f.active
	}
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.active--
		f.mu.Unlock()
	}()

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.warmed = append(f.warmed, url)
	return f.fail[url]
}

func TestImagePreloader_ReportsResult(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	images := &fakeImages{fail: map[string]error{"bad": errors.New("boom")}}
	p := NewImagePreloader(images, 2, time.Second)
	defer p.Close()

	results := make(chan error, 2)
	p.Preload("good", func(err error) { results <- err })
	p.Preload("bad", func(err error) { results <- err })

	got := []error{<-results, <-results}
	assert.Contains(t, got, nil)
	assert.Len(t, images.warmed, 2)
}

func TestImagePreloader_CloseCancelsPending(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	images := &fakeImages{block: make(chan struct{})}
	p := NewImagePreloader(images, 1, time.Minute)

	done := make(chan error, 1)
	p.Preload("slow", func(err error) { done <- err })
	p.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("preload did not finish after Close")
	}
}

func TestImagePreloader_BoundsConcurrency(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	images := &fakeImages{block: make(chan struct{})}
	p := NewImagePreloader(images, 2, time.Minute)
	defer p.Close()

	results := make(chan error, 5)
	for _, url := range []string{"a", "b", "c", "d", "e"} {
		p.Preload(url, func(err error) { results <- err })
	}

	peak := func() int {
		images.mu.Lock()
		defer images.mu.Unlock()
		return images.peak
	}
	require.Eventually(t, func() bool { return peak() == 2 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return peak() > 2 }, 50*time.Millisecond, 5*time.Millisecond)

	close(images.block)
	for i := 0; i < 5; i++ {
		assert.NoError(t, <-results)
	}
	assert.Equal(t, 2, peak())
}

func TestImagePreloader_CloseCancelsQueued(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	images := &fakeImages{block: make(chan struct{})}
	p := NewImagePreloader(images, 1, time.Minute)

	results := make(chan error, 2)
	p.Preload("running", func(err error) { results <- err })
	require.Eventually(t, func() bool {
		images.mu.Lock()
		defer images.mu.Unlock()
		return images.active == 1
	}, time.Second, 5*time.Millisecond)
	p.Preload("queued", func(err error) { results <- err })
	p.Close()

	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, <-results, context.Canceled)
	}
	images.mu.Lock()
	defer images.mu.Unlock()
	assert.Empty(t, images.warmed)
}

func TestImagePreloader_DrivesCarousel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	images := &fakeImages{}
	p := NewImagePreloader(images, 2, time.Second)
	defer p.Close()

	sched := clock.NewManual()
	ctrl := carousel.New([]models.Image{
		{ID: "a", URL: "https://cdn.example/a.jpg"},
		{ID: "b", URL: "https://cdn.example/b.jpg"},
	}, p, sched, carousel.DefaultConfig())
	defer ctrl.Close()

	ctrl.SwitchTo(1)
	require.Eventually(t, func() bool {
		return ctrl.State().Phase == carousel.PhaseFadeOut
	}, time.Second, 5*time.Millisecond)

	sched.Advance(time.Second)
	st := ctrl.State()
	assert.Equal(t, 1, st.DisplayIndex)
	assert.Equal(t, carousel.NoPending, st.PendingIndex)
}
