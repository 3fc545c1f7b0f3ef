package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultDedupeTTL is the fallback suppression window when none is configured.
const DefaultDedupeTTL = 24 * time.Hour

// Store handles the optional Redis-backed relay state: duplicate suppression
// and delivery counters. The relay works without it; every method is
// best-effort from the caller's point of view.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// MarkSeen records a bookmark fingerprint for the given TTL and reports
// whether it was already present. first == true means this is the first
// sighting inside the window and the notification should go out.
func (s *Store) MarkSeen(ctx context.Context, fingerprint string, ttl time.Duration) (first bool, err error) {
	if ttl <= 0 {
		ttl = DefaultDedupeTTL
	}
	ok, err := s.client.SetNX(ctx, SeenKey(fingerprint), time.Now().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark bookmark seen: %w", err)
	}
	return ok, nil
}

// Forget drops a fingerprint so the next sighting notifies again.
// Used after a failed delivery: the bookmark was never announced.
func (s *Store) Forget(ctx context.Context, fingerprint string) error {
	if err := s.client.Del(ctx, SeenKey(fingerprint)).Err(); err != nil {
		return fmt.Errorf("failed to forget fingerprint: %w", err)
	}
	return nil
}

// IncrRelayed bumps the delivered-notification counter.
func (s *Store) IncrRelayed(ctx context.Context) error {
	return s.incr(ctx, KeyRelayed)
}

// IncrFailed bumps the failed-delivery counter.
func (s *Store) IncrFailed(ctx context.Context) error {
	return s.incr(ctx, KeyFailed)
}

// IncrSuppressed bumps the suppressed-duplicate counter.
func (s *Store) IncrSuppressed(ctx context.Context) error {
	return s.incr(ctx, KeySuppressed)
}

func (s *Store) incr(ctx context.Context, key string) error {
	if err := s.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to increment %s: %w", key, err)
	}
	return nil
}

// Stats returns the relay counters. Missing keys read as zero.
func (s *Store) Stats(ctx context.Context) (relayed, failed, suppressed int64, err error) {
	vals, err := s.client.MGet(ctx, KeyRelayed, KeyFailed, KeySuppressed).Result()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to read relay stats: %w", err)
	}
	counters := make([]int64, len(vals))
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			counters[i] = n
		}
	}
	return counters[0], counters[1], counters[2], nil
}

// Ping reports whether the store's Redis connection is healthy.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
