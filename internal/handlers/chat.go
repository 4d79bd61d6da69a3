package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"rehnuma-chat/internal/middleware"
	"rehnuma-chat/internal/models"
	"rehnuma-chat/internal/services"
)

// ConfigErrorMessage is returned in place of a reply while no usable Gemini
// key is configured.
const ConfigErrorMessage = "❌ API Key not configured. Please set GEMINI_API_KEY in environment variables."

var errGeneratorUnavailable = errors.New("Gemini client is not available")

// generator is the slice of services.GeminiService the handlers rely on.
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type ChatHandler struct {
	gen           generator
	model         string
	keyConfigured bool
	now           func() time.Time
}

// NewChatHandler builds the chat handler. gen may be nil when the Gemini
// client could not be created; requests then report a generation error.
func NewChatHandler(gen generator, model string, keyConfigured bool) *ChatHandler {
	return &ChatHandler{
		gen:           gen,
		model:         model,
		keyConfigured: keyConfigured,
		now:           time.Now,
	}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Message required"})
		return
	}

	if !h.keyConfigured {
		writeJSON(w, http.StatusInternalServerError, models.ChatResponse{
			Response: ConfigErrorMessage,
			Error:    true,
		})
		return
	}

	tag := requestTag(r)
	log.Printf("📨 %sUser: %s...", tag, preview(req.Message, 50))

	prompt := services.BuildChatPrompt(req.Message, req.History)
	text, err := h.generate(r.Context(), prompt)
	if err != nil {
		log.Printf("❌ %sAPI Error: %v", tag, err)
		writeJSON(w, http.StatusInternalServerError, models.ChatResponse{
			Response: fmt.Sprintf("**Error:** %s\n\nPlease try again.", err.Error()),
			Error:    true,
		})
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Response:  text,
		Model:     h.model,
		Timestamp: models.Timestamp(h.now()),
	})
}

func (h *ChatHandler) generate(ctx context.Context, prompt string) (string, error) {
	if h.gen == nil {
		return "", errGeneratorUnavailable
	}
	return h.gen.Generate(ctx, prompt)
}

// requestTag prefixes log lines with the request ID when one is set.
func requestTag(r *http.Request) string {
	if id := middleware.GetRequestID(r.Context()); id != "" {
		return "[" + id + "] "
	}
	return ""
}

// preview cuts s to at most n runes for log lines.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
