package router

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"rehnuma-chat/internal/handlers"
	"rehnuma-chat/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	staticDir string,
	corsOrigin string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(corsOrigin))

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.Chat)
		r.Get("/health", chatHandler.Health)
		r.Get("/test", chatHandler.Test)
	})

	// ──── Static web client ────
	if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}

	return r
}
