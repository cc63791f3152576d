package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"vitrina/logger"
	"vitrina/models"
)

const recentlyViewedPrefix = "vitrina:recently_viewed:"

// RedisRecentlyViewedStore keeps recently viewed lists in Redis. Each list is
// a Redis list of msgpack-encoded entries, most recent first, expiring after
// ttl of inactivity.
type RedisRecentlyViewedStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// Ensure RedisRecentlyViewedStore implements RecentlyViewedStore
var _ RecentlyViewedStore = (*RedisRecentlyViewedStore)(nil)

// NewRedisRecentlyViewedStore connects to the Redis server at url
// (redis://[:password@]host:port[/db]).
func NewRedisRecentlyViewedStore(url string, ttl time.Duration) (*RedisRecentlyViewedStore, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("recently viewed: invalid redis URL: %w", err)
	}
	return &RedisRecentlyViewedStore{client: goredis.NewClient(opts), ttl: ttl}, nil
}

// Ping checks the connection
func (s *RedisRecentlyViewedStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get returns the visitor's list, most recent first
func (s *RedisRecentlyViewedStore) Get(ctx context.Context, key string) ([]models.RecentlyViewedEntry, error) {
	raw, err := s.client.LRange(ctx, recentlyViewedPrefix+key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("recently viewed: lrange: %w", err)
	}
	out := make([]models.RecentlyViewedEntry, 0, len(raw))
	for _, item := range raw {
		var e models.RecentlyViewedEntry
		if err := msgpack.Unmarshal([]byte(item), &e); err != nil {
			// Dropped by the next Append
			logger.L().Warnf("⚠️ recently viewed: skipping undecodable entry in %s: %v", key, err)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Append moves entry to the front of the list and trims it to maxSize. The
// read-modify-write runs under WATCH and is retried when another request
// touches the same list.
func (s *RedisRecentlyViewedStore) Append(ctx context.Context, key string, entry models.RecentlyViewedEntry, maxSize int) error {
	if maxSize < 1 {
		return nil
	}
	redisKey := recentlyViewedPrefix + key
	payload, err := msgpack.Marshal(&entry)
	if err != nil {
		return fmt.Errorf("recently viewed: encode entry: %w", err)
	}

	txf := func(tx *goredis.Tx) error {
		raw, err := tx.LRange(ctx, redisKey, 0, -1).Result()
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			// Entries carry timestamps, so older copies are matched by handle
			for _, item := range raw {
				var e models.RecentlyViewedEntry
				if err := msgpack.Unmarshal([]byte(item), &e); err != nil || e.Handle == entry.Handle {
					pipe.LRem(ctx, redisKey, 0, item)
				}
			}
			pipe.LPush(ctx, redisKey, payload)
			pipe.LTrim(ctx, redisKey, 0, int64(maxSize-1))
			if s.ttl > 0 {
				pipe.Expire(ctx, redisKey, s.ttl)
			}
			return nil
		})
		return err
	}

	for attempt := 0; attempt < 3; attempt++ {
		err = s.client.Watch(ctx, txf, redisKey)
		if !errors.Is(err, goredis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("recently viewed: append: %w", err)
	}
	return nil
}

// Close releases the connection pool
func (s *RedisRecentlyViewedStore) Close() error {
	return s.client.Close()
}

// MemoryRecentlyViewedStore is an in-process RecentlyViewedStore used when
// Redis is not configured
type MemoryRecentlyViewedStore struct {
	mu    sync.Mutex
	lists map[string][]models.RecentlyViewedEntry
}

// Ensure MemoryRecentlyViewedStore implements RecentlyViewedStore
var _ RecentlyViewedStore = (*MemoryRecentlyViewedStore)(nil)

// NewMemoryRecentlyViewedStore creates an empty store
func NewMemoryRecentlyViewedStore() *MemoryRecentlyViewedStore {
	return &MemoryRecentlyViewedStore{lists: make(map[string][]models.RecentlyViewedEntry)}
}

// Get returns a copy of the visitor's list
func (s *MemoryRecentlyViewedStore) Get(_ context.Context, key string) ([]models.RecentlyViewedEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.lists[key]
	out := make([]models.RecentlyViewedEntry, len(list))
	copy(out, list)
	return out, nil
}

// Append moves entry to the front of the list and trims it to maxSize
func (s *MemoryRecentlyViewedStore) Append(_ context.Context, key string, entry models.RecentlyViewedEntry, maxSize int) error {
	if maxSize < 1 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]models.RecentlyViewedEntry, 0, maxSize)
	list = append(list, entry)
	for _, e := range s.lists[key] {
		if len(list) == maxSize {
			break
		}
		if e.Handle != entry.Handle {
			list = append(list, e)
		}
	}
	s.lists[key] = list
	return nil
}
