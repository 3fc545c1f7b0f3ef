package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"linkherald/internal/config"
	"linkherald/internal/domain"
	"linkherald/internal/utils"
)

// Notifier delivers rendered messages to a Slack incoming webhook.
// It performs a single blocking POST per message and never retries.
type Notifier struct {
	client     *http.Client
	webhookURL string
	now        func() time.Time
}

// Option customizes a Notifier, mostly for tests.
type Option func(*Notifier)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) { n.client = c }
}

// WithNow replaces the clock used by the test message.
func WithNow(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

func New(webhookURL string, opts ...Option) *Notifier {
	n := &Notifier{
		client:     &http.Client{Timeout: 10 * time.Second},
		webhookURL: webhookURL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Configured reports whether a usable webhook URL has been set.
func (n *Notifier) Configured() bool {
	return n.webhookURL != "" && n.webhookURL != config.PlaceholderWebhookURL
}

// Send renders the bookmark and posts it to the configured webhook.
func (n *Notifier) Send(ctx context.Context, b *domain.Bookmark) error {
	return n.post(ctx, Render(b))
}

// SendTest posts the fixed operator-verification message through the same
// delivery path, with the same error semantics as Send.
func (n *Notifier) SendTest(ctx context.Context) error {
	return n.post(ctx, renderTest(n.now()))
}

func (n *Notifier) post(ctx context.Context, msg Message) error {
	if !n.Configured() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return &DeliveryError{Err: err}
	}
	defer utils.Close(resp.Body)

	// Slack answers 200 "ok" on success; anything else counts as failure.
	if resp.StatusCode != http.StatusOK {
		return &DeliveryError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return nil
}
