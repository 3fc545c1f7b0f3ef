package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"linkherald/internal/domain"
	"linkherald/internal/httpserver/deps"
	"linkherald/internal/logger"
	"linkherald/internal/notify"
)

type fakeNotifier struct {
	sent       []*domain.Bookmark
	testsSent  int
	err        error
	configured bool
}

func (f *fakeNotifier) Send(_ context.Context, b *domain.Bookmark) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, b)
	return nil
}

func (f *fakeNotifier) SendTest(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.testsSent++
	return nil
}

func (f *fakeNotifier) Configured() bool { return f.configured }

type fakeStore struct {
	seen       map[string]bool
	markErr    error
	relayed    int64
	failed     int64
	suppressed int64
	forgotten  []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{seen: make(map[string]bool)}
}

func (f *fakeStore) MarkSeen(_ context.Context, fp string, _ time.Duration) (bool, error) {
	if f.markErr != nil {
		return false, f.markErr
	}
	if f.seen[fp] {
		return false, nil
	}
	f.seen[fp] = true
	return true, nil
}

func (f *fakeStore) Forget(_ context.Context, fp string) error {
	delete(f.seen, fp)
	f.forgotten = append(f.forgotten, fp)
	return nil
}

func (f *fakeStore) IncrRelayed(context.Context) error    { f.relayed++; return nil }
func (f *fakeStore) IncrFailed(context.Context) error     { f.failed++; return nil }
func (f *fakeStore) IncrSuppressed(context.Context) error { f.suppressed++; return nil }

func (f *fakeStore) Stats(context.Context) (int64, int64, int64, error) {
	return f.relayed, f.failed, f.suppressed, nil
}

func (f *fakeStore) Ping(context.Context) error { return nil }

func testDeps(n deps.Notifier, s deps.RelayStore) deps.Deps {
	return deps.Deps{
		Logger:    logger.New("error", false),
		StartTime: time.Now(),
		TimeNow: func() time.Time {
			return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
		},
		Notifier:  n,
		Store:     s,
		DedupeTTL: time.Hour,
	}
}

func postWebhook(t *testing.T, d deps.Deps, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook/linkding", strings.NewReader(body))
	rr := httptest.NewRecorder()
	Webhook(d)(rr, req)
	return rr
}

func TestWebhookRelaysBookmark(t *testing.T) {
	n := &fakeNotifier{configured: true}
	rr := postWebhook(t, testDeps(n, nil),
		`{"url":"https://example.com","title":"Example","tag_names":["x"]}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"success":true`) {
		t.Errorf("body = %s, want success:true", rr.Body.String())
	}
	if len(n.sent) != 1 {
		t.Fatalf("notifier received %d bookmarks, want 1", len(n.sent))
	}
	b := n.sent[0]
	if b.URL != "https://example.com" || b.Title != "Example" {
		t.Errorf("relayed bookmark = %+v", b)
	}
	if len(b.Tags) != 1 || b.Tags[0] != "x" {
		t.Errorf("Tags = %v, want [x]", b.Tags)
	}
}

func TestWebhookRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not JSON", body: `not json at all`},
		{name: "JSON without a bookmark", body: `{"event":"bookmark.created"}`},
		{name: "empty url", body: `{"url":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &fakeNotifier{configured: true}
			rr := postWebhook(t, testDeps(n, nil), tt.body)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rr.Code)
			}
			if len(n.sent) != 0 {
				t.Error("nothing should have been relayed")
			}
		})
	}
}

func TestWebhookDeliveryFailureIsGeneric(t *testing.T) {
	n := &fakeNotifier{
		configured: true,
		err:        &notify.DeliveryError{StatusCode: 502, Status: "502 Bad Gateway"},
	}
	rr := postWebhook(t, testDeps(n, nil), `{"url":"https://example.com"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "Bad Gateway") {
		t.Errorf("response leaks upstream status text: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "error") {
		t.Errorf("response should carry a generic error body: %s", rr.Body.String())
	}
}

func TestWebhookUnconfiguredNotifier(t *testing.T) {
	n := &fakeNotifier{err: notify.ErrNotConfigured}
	rr := postWebhook(t, testDeps(n, nil), `{"url":"https://example.com"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
}

func TestWebhookDuplicateSuppression(t *testing.T) {
	n := &fakeNotifier{configured: true}
	s := newFakeStore()
	d := testDeps(n, s)
	body := `{"url":"https://example.com"}`

	first := postWebhook(t, d, body)
	if first.Code != http.StatusOK {
		t.Fatalf("first relay status = %d, want 200", first.Code)
	}

	second := postWebhook(t, d, body)
	if second.Code != http.StatusOK {
		t.Fatalf("duplicate status = %d, want 200", second.Code)
	}
	if !strings.Contains(second.Body.String(), `"duplicate":true`) {
		t.Errorf("duplicate body = %s, want duplicate:true", second.Body.String())
	}
	if len(n.sent) != 1 {
		t.Errorf("notifier received %d bookmarks, want 1 (duplicate suppressed)", len(n.sent))
	}
	if s.suppressed != 1 || s.relayed != 1 {
		t.Errorf("counters relayed=%d suppressed=%d, want 1 and 1", s.relayed, s.suppressed)
	}
}

func TestWebhookStoreErrorDoesNotBlockRelay(t *testing.T) {
	n := &fakeNotifier{configured: true}
	s := newFakeStore()
	s.markErr = context.DeadlineExceeded

	rr := postWebhook(t, testDeps(n, s), `{"url":"https://example.com"}`)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 despite store failure", rr.Code)
	}
	if len(n.sent) != 1 {
		t.Error("bookmark should still have been relayed")
	}
}

func TestWebhookFailedDeliveryForgetsFingerprint(t *testing.T) {
	n := &fakeNotifier{
		configured: true,
		err:        &notify.DeliveryError{StatusCode: 500, Status: "500 Internal Server Error"},
	}
	s := newFakeStore()

	rr := postWebhook(t, testDeps(n, s), `{"url":"https://example.com"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if len(s.forgotten) != 1 {
		t.Error("failed delivery should drop the seen fingerprint for a later retry by the sender")
	}
	if s.failed != 1 {
		t.Errorf("failed counter = %d, want 1", s.failed)
	}
}

func TestTestSlack(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		n := &fakeNotifier{configured: true}
		req := httptest.NewRequest(http.MethodPost, "/test-slack", nil)
		rr := httptest.NewRecorder()
		TestSlack(testDeps(n, nil))(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rr.Code)
		}
		if n.testsSent != 1 {
			t.Errorf("testsSent = %d, want 1", n.testsSent)
		}
	})

	t.Run("failure", func(t *testing.T) {
		n := &fakeNotifier{err: notify.ErrNotConfigured}
		req := httptest.NewRequest(http.MethodPost, "/test-slack", nil)
		rr := httptest.NewRecorder()
		TestSlack(testDeps(n, nil))(rr, req)

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rr.Code)
		}
	})
}

func TestLiveness(t *testing.T) {
	n := &fakeNotifier{configured: true}
	d := testDeps(n, newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	Liveness(d)(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"status":"ok"`) {
		t.Errorf("body = %s, want status ok", body)
	}
	if !strings.Contains(body, `"notifier"`) || !strings.Contains(body, `"dedupe"`) {
		t.Errorf("body = %s, want component statuses", body)
	}
}

func TestLivenessUnconfiguredNotifier(t *testing.T) {
	n := &fakeNotifier{configured: false}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	Liveness(testDeps(n, nil))(rr, req)

	if !strings.Contains(rr.Body.String(), `"configured":false`) {
		t.Errorf("body = %s, want notifier configured:false", rr.Body.String())
	}
}
