package notify

import (
	"fmt"
	"strings"
	"time"

	"linkherald/internal/domain"
)

// Message is a Slack incoming-webhook payload using Block Kit layout blocks.
// Text is the notification fallback shown in clients that don't render blocks.
type Message struct {
	Text   string  `json:"text"`
	Blocks []Block `json:"blocks,omitempty"`
}

type Block struct {
	Type     string `json:"type"`
	Text     *Text  `json:"text,omitempty"`
	Elements []Text `json:"elements,omitempty"`
}

type Text struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

const dateLayout = "Jan 2, 2006 at 3:04 PM"

// Render builds the fixed-layout bookmark notification: header, linked title,
// optional description and tags sections, and a context line with the save
// time.
func Render(b *domain.Bookmark) Message {
	blocks := []Block{
		{
			Type: "header",
			Text: &Text{Type: "plain_text", Text: "🔖 New bookmark saved", Emoji: true},
		},
		{
			Type: "section",
			Text: &Text{
				Type: "mrkdwn",
				Text: fmt.Sprintf("*<%s|%s>*", b.URL, escapeMrkdwn(b.Title)),
			},
		},
	}

	if b.Description != "" {
		blocks = append(blocks, Block{
			Type: "section",
			Text: &Text{Type: "mrkdwn", Text: escapeMrkdwn(b.Description)},
		})
	}

	if len(b.Tags) > 0 {
		blocks = append(blocks, Block{
			Type: "section",
			Text: &Text{
				Type: "mrkdwn",
				Text: "*Tags:* " + escapeMrkdwn(strings.Join(b.Tags, ", ")),
			},
		})
	}

	blocks = append(blocks, Block{
		Type: "context",
		Elements: []Text{
			{Type: "mrkdwn", Text: "Added " + b.DateAdded.Format(dateLayout)},
		},
	})

	return Message{
		Text:   fmt.Sprintf("New bookmark saved: %s (%s)", b.Title, b.URL),
		Blocks: blocks,
	}
}

// renderTest is the fixed message behind the /test-slack operator endpoint.
func renderTest(now time.Time) Message {
	return Message{
		Text: "linkherald test message",
		Blocks: []Block{
			{
				Type: "section",
				Text: &Text{
					Type: "mrkdwn",
					Text: ":white_check_mark: linkherald is wired up and can reach this channel.",
				},
			},
			{
				Type: "context",
				Elements: []Text{
					{Type: "mrkdwn", Text: "Sent " + now.Format(dateLayout)},
				},
			},
		},
	}
}

// escapeMrkdwn escapes the three characters Slack requires escaping in
// user-supplied text (https://api.slack.com/reference/surfaces/formatting).
func escapeMrkdwn(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
