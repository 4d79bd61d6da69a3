package services

import (
	"strings"

	"rehnuma-chat/internal/models"
)

// HistoryWindow is how many trailing turns are replayed to the model.
const HistoryWindow = 5

// TrailingTurns returns the last n turns of history in their original order.
func TrailingTurns(history []models.Turn, n int) []models.Turn {
	if n <= 0 {
		return nil
	}
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// BuildChatPrompt returns message unchanged when there is no history.
// Otherwise it frames up to HistoryWindow prior turns as a transcript ahead
// of the new question.
func BuildChatPrompt(message string, history []models.Turn) string {
	if len(history) == 0 {
		return message
	}

	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for i, turn := range TrailingTurns(history, HistoryWindow) {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("User: ")
		b.WriteString(turn.User)
		b.WriteString("\nAssistant: ")
		b.WriteString(turn.Bot)
	}
	b.WriteString("\n\nNew question: ")
	b.WriteString(message)

	return b.String()
}
