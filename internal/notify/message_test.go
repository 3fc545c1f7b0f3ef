package notify

import (
	"strings"
	"testing"
	"time"

	"linkherald/internal/domain"
)

func testBookmark() *domain.Bookmark {
	return &domain.Bookmark{
		URL:         "https://example.com",
		Title:       "Example",
		Description: "A sample page",
		Tags:        []string{"a", "b"},
		DateAdded:   time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC),
	}
}

func blockTexts(m Message) []string {
	var texts []string
	for _, block := range m.Blocks {
		if block.Text != nil {
			texts = append(texts, block.Text.Text)
		}
		for _, el := range block.Elements {
			texts = append(texts, el.Text)
		}
	}
	return texts
}

func containsText(m Message, substr string) bool {
	for _, text := range blockTexts(m) {
		if strings.Contains(text, substr) {
			return true
		}
	}
	return false
}

func TestRenderFullBookmark(t *testing.T) {
	m := Render(testBookmark())

	if len(m.Blocks) != 5 {
		t.Fatalf("got %d blocks, want 5 (header, title, description, tags, context)", len(m.Blocks))
	}
	if m.Blocks[0].Type != "header" {
		t.Errorf("first block type = %q, want header", m.Blocks[0].Type)
	}
	if !containsText(m, "<https://example.com|Example>") {
		t.Error("title block should link the title to the url")
	}
	if !containsText(m, "A sample page") {
		t.Error("description block missing")
	}
	if !containsText(m, "*Tags:* a, b") {
		t.Error("tag line should contain the comma-joined tags")
	}
	if !containsText(m, "Mar 15, 2026") {
		t.Error("context block should carry a human-readable date")
	}
	if m.Text == "" {
		t.Error("fallback text should not be empty")
	}
}

func TestRenderOmitsEmptySections(t *testing.T) {
	b := testBookmark()
	b.Description = ""
	b.Tags = nil

	m := Render(b)

	if len(m.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3 (header, title, context)", len(m.Blocks))
	}
	if containsText(m, "Tags:") {
		t.Error("tag section should be omitted when there are no tags")
	}
}

func TestRenderEscapesTitle(t *testing.T) {
	b := testBookmark()
	b.Title = "a < b & c > d"

	m := Render(b)

	if !containsText(m, "a &lt; b &amp; c &gt; d") {
		t.Errorf("title should be mrkdwn-escaped, blocks: %v", blockTexts(m))
	}
	if containsText(m, "|a < b") {
		t.Error("raw angle brackets must not leak into the link text")
	}
}

func TestRenderTest(t *testing.T) {
	now := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)
	m := renderTest(now)

	if m.Text == "" {
		t.Error("test message needs fallback text")
	}
	if !containsText(m, "linkherald") {
		t.Error("test message should identify the sender")
	}
	if !containsText(m, "Mar 15, 2026") {
		t.Error("test message should carry the send time")
	}
}
