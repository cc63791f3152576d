package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"vitrina/logger"
	"vitrina/models"
	"vitrina/repository"
)

// AnalyticsService records storefront events without blocking requests.
// Events are buffered and written in batches by one background worker;
// when the buffer is full new events are dropped.
type AnalyticsService struct {
	repo          repository.AnalyticsRepositoryInterface
	events        chan models.AnalyticsEvent
	batchSize     int
	flushInterval time.Duration
	now           func() time.Time

	wg        sync.WaitGroup
	closeOnce sync.Once
	dropped   atomic.Int64
}

// NewAnalyticsService starts the batch writer. A nil repo gives a service
// that discards every event.
func NewAnalyticsService(repo repository.AnalyticsRepositoryInterface, bufferSize, batchSize int, flushInterval time.Duration) *AnalyticsService {
	s := &AnalyticsService{repo: repo, batchSize: batchSize, flushInterval: flushInterval, now: time.Now}
	if repo == nil {
		return s
	}
	if s.batchSize < 1 {
		s.batchSize = 50
	}
	if s.flushInterval <= 0 {
		s.flushInterval = 5 * time.Second
	}
	s.events = make(chan models.AnalyticsEvent, bufferSize)
	s.wg.Add(1)
	go s.run()
	return s
}

// Track queues an event
func (s *AnalyticsService) Track(e models.AnalyticsEvent) {
	if s == nil || s.events == nil {
		return
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = s.now()
	}
	select {
	case s.events <- e:
	default:
		if n := s.dropped.Add(1); n%100 == 1 {
			logger.L().Warnf("⚠️ Analytics: buffer full, %d events dropped so far", n)
		}
	}
}

// Dropped returns the number of events discarded because the buffer was full
func (s *AnalyticsService) Dropped() int64 { return s.dropped.Load() }

// TopResources returns the most viewed resources of kind since the given time
func (s *AnalyticsService) TopResources(ctx context.Context, kind string, since time.Time, limit int) ([]models.ResourceViewCount, error) {
	if s == nil || s.repo == nil {
		return nil, nil
	}
	return s.repo.TopResources(ctx, kind, since, limit)
}

// Close flushes queued events and stops the worker. Track must not be
// called after Close.
func (s *AnalyticsService) Close() {
	if s == nil || s.events == nil {
		return
	}
	s.closeOnce.Do(func() { close(s.events) })
	s.wg.Wait()
}

func (s *AnalyticsService) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	batch := make([]models.AnalyticsEvent, 0, s.batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.InsertBatch(ctx, batch); err != nil {
			logger.L().Errorf("❌ Analytics: failed to write %d events: %v", len(batch), err)
		}
		batch = batch[:0]
	}

	for {
		select {
		case e, ok := <-s.events:
			if !ok {
				flush()
				return
			}
			batch = append(batch, e)
			if len(batch) >= s.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
