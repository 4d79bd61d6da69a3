package chat

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rehnuma-chat/internal/models"
)

func TestFormatTranscript(t *testing.T) {
	generated := time.Date(2026, 3, 1, 15, 4, 5, 0, time.UTC)
	messages := []Message{
		{Role: RoleUser, Text: "Tell me about admissions"},
		{Role: RoleBot, Text: "Admissions open in July.\n"},
	}

	got := FormatTranscript(messages, generated)

	rule := strings.Repeat("=", 50)
	sep := strings.Repeat("-", 40)
	want := "REHNUMA CHAT HISTORY\n" +
		rule + "\n" +
		"Generated: 3/1/2026, 3:04:05 PM\n" +
		rule + "\n\n" +
		"[YOU]\nTell me about admissions\n" + sep + "\n\n" +
		"[REHNUMA]\nAdmissions open in July.\n" + sep + "\n\n" +
		"\n" + rule + "\n" +
		"Total messages: 2\n" +
		"End of chat history\n"
	assert.Equal(t, want, got)
}

func TestTranscriptFileName(t *testing.T) {
	ts := time.Date(2026, 3, 1, 9, 30, 0, 123000000, time.UTC)
	assert.Equal(t, "rehnuma-chat-2026-03-01T09-30-00.txt", TranscriptFileName(ts))
}

func TestMessagesFromTurns(t *testing.T) {
	turns := []models.Turn{
		{User: "a", Bot: "b"},
		{User: "c", Bot: ""},
	}

	assert.Equal(t, []Message{
		{Role: RoleUser, Text: "a"},
		{Role: RoleBot, Text: "b"},
		{Role: RoleUser, Text: "c"},
	}, MessagesFromTurns(turns))
}

func TestRenderHTMLDocument(t *testing.T) {
	doc := RenderHTMLDocument([]Message{
		{Role: RoleUser, Text: "<hi>"},
		{Role: RoleBot, Text: "**bold**"},
	}, "Rehnuma", time.Date(2026, 3, 1, 15, 4, 5, 0, time.UTC))

	assert.Contains(t, doc, "Generated: 3/1/2026, 3:04:05 PM | Total messages: 2")
	assert.Contains(t, doc, "&lt;hi&gt;")
	assert.Contains(t, doc, "<strong>bold</strong>")
	assert.Contains(t, doc, "<title>Rehnuma</title>")
}
