package deps

import (
	"context"
	"time"

	"linkherald/internal/domain"
	"linkherald/internal/logger"
)

// Notifier delivers rendered bookmark notifications to the chat endpoint.
type Notifier interface {
	Send(ctx context.Context, b *domain.Bookmark) error
	SendTest(ctx context.Context) error
	Configured() bool
}

// RelayStore is the optional Redis-backed relay state (dedupe + counters).
// A nil RelayStore disables both features.
type RelayStore interface {
	MarkSeen(ctx context.Context, fingerprint string, ttl time.Duration) (first bool, err error)
	Forget(ctx context.Context, fingerprint string) error
	IncrRelayed(ctx context.Context) error
	IncrFailed(ctx context.Context) error
	IncrSuppressed(ctx context.Context) error
	Stats(ctx context.Context) (relayed, failed, suppressed int64, err error)
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time // for testing, defaults to time.Now
	WebhookSecret string           // empty disables the request gate
	Notifier      Notifier
	Store         RelayStore    // nil when Redis is not configured
	DedupeTTL     time.Duration // suppression window for repeated bookmark URLs
}
