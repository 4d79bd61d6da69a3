package chat

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rehnuma-chat/internal/models"
	"rehnuma-chat/internal/render"
)

// ErrNothingToDownload is returned by Download when the chat box is empty.
var ErrNothingToDownload = errors.New("no messages to download")

const generatedLayout = "1/2/2006, 3:04:05 PM"

// FormatTranscript lays out messages as the plain-text chat download.
func FormatTranscript(messages []Message, generated time.Time) string {
	rule := strings.Repeat("=", 50)
	sep := strings.Repeat("-", 40)

	var b strings.Builder
	b.WriteString("REHNUMA CHAT HISTORY\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", generated.Format(generatedLayout))
	b.WriteString(rule + "\n\n")

	for _, m := range messages {
		sender := "YOU"
		if m.Role == RoleBot {
			sender = "REHNUMA"
		}
		fmt.Fprintf(&b, "[%s]\n", sender)
		b.WriteString(strings.TrimSpace(m.Text) + "\n")
		b.WriteString(sep + "\n\n")
	}

	b.WriteString("\n" + rule + "\n")
	fmt.Fprintf(&b, "Total messages: %d\n", len(messages))
	b.WriteString("End of chat history\n")
	return b.String()
}

// TranscriptFileName names a download made at t, e.g.
// rehnuma-chat-2026-03-01T09-30-00.txt.
func TranscriptFileName(t time.Time) string {
	return "rehnuma-chat-" + t.UTC().Format("2006-01-02T15-04-05") + ".txt"
}

// MessagesFromTurns flattens stored turns into chat box order.
func MessagesFromTurns(turns []models.Turn) []Message {
	messages := make([]Message, 0, len(turns)*2)
	for _, t := range turns {
		if t.User != "" {
			messages = append(messages, Message{Role: RoleUser, Text: t.User})
		}
		if t.Bot != "" {
			messages = append(messages, Message{Role: RoleBot, Text: t.Bot})
		}
	}
	return messages
}

// RenderHTMLDocument replays messages onto a fresh HTML surface and returns
// the standalone page, footed with the generation time and message count.
func RenderHTMLDocument(messages []Message, title string, generated time.Time) string {
	surface := render.NewHTMLSurface(title)
	for _, m := range messages {
		if m.Role == RoleBot {
			surface.ShowBot(m.Text)
		} else {
			surface.ShowUser(m.Text)
		}
	}
	surface.Notify(fmt.Sprintf("Generated: %s | Total messages: %d", generated.Format(generatedLayout), len(messages)))
	return surface.Document()
}

// Download writes the rendered chat box as a text transcript into dir and
// returns the file path. An empty chat box only produces a notification.
func (c *Controller) Download(dir string) (string, error) {
	messages := c.Rendered()
	if len(messages) == 0 {
		c.surface.Notify("No messages to download.")
		return "", ErrNothingToDownload
	}

	now := c.now()
	path := filepath.Join(dir, TranscriptFileName(now))
	if err := os.WriteFile(path, []byte(FormatTranscript(messages, now)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}

	c.CloseMenu()
	c.surface.Notify("Chat downloaded successfully!")
	return path, nil
}
