package handlers

import (
	"net/http"

	"rehnuma-chat/internal/models"
)

const testPrompt = `Say "Server is working!"`

// Health answers liveness probes without touching Gemini.
func (h *ChatHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:           "healthy",
		Model:            h.model,
		APIKeyConfigured: h.keyConfigured,
		Timestamp:        models.Timestamp(h.now()),
	})
}

// Test performs one live round-trip to Gemini. It always answers 200 and
// reports the outcome in the body.
func (h *ChatHandler) Test(w http.ResponseWriter, r *http.Request) {
	if !h.keyConfigured {
		writeJSON(w, http.StatusOK, models.TestResponse{
			Status:  "⚠️ No API Key",
			Message: "Set GEMINI_API_KEY in environment variables",
		})
		return
	}

	text, err := h.generate(r.Context(), testPrompt)
	if err != nil {
		writeJSON(w, http.StatusOK, models.TestResponse{
			Status: "❌ Error",
			Error:  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, models.TestResponse{
		Status:   "✅ Working",
		Model:    h.model,
		Response: text,
	})
}
