package models

import "time"

// TimestampLayout is the ISO-8601 layout used for every timestamp on the wire
// and in persisted history (UTC, millisecond precision).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formats t in TimestampLayout after converting it to UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Turn is one completed exchange: the user's message and the bot's reply.
type Turn struct {
	User      string `json:"user"`
	Bot       string `json:"bot"`
	Timestamp string `json:"timestamp"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
	History []Turn `json:"history"`
}

// ChatResponse is the reply from the chat endpoint. Handled failures set
// Error and carry displayable text in Response.
type ChatResponse struct {
	Response  string `json:"response"`
	Model     string `json:"model,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     bool   `json:"error,omitempty"`
}

// ErrorResponse rejects a malformed request before any generation happens.
type ErrorResponse struct {
	Error string `json:"error"`
}
