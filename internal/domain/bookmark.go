package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// DefaultTitle is substituted when a payload carries no usable title.
const DefaultTitle = "Untitled"

// Bookmark is the canonical record extracted from a linkding webhook payload.
// It is built fresh per request and never mutated afterwards.
type Bookmark struct {
	URL         string
	Title       string
	Description string
	Tags        []string
	DateAdded   time.Time
}

// Fingerprint returns a stable short identifier derived from the bookmark URL.
// The same URL always produces the same fingerprint, which is what the
// duplicate-suppression store keys on.
func (b *Bookmark) Fingerprint() string {
	hash := sha256.Sum256([]byte(b.URL))
	return hex.EncodeToString(hash[:])[:16]
}
