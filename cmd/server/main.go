package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rehnuma-chat/internal/config"
	"rehnuma-chat/internal/handlers"
	"rehnuma-chat/internal/router"
	"rehnuma-chat/internal/services"
)

func main() {
	log.Println("🚀 Starting Rehnuma Server...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Gemini Client ────
	// A missing key or a client failure is logged and the server keeps
	// running so health checks still answer.
	keyConfigured := cfg.APIKeyConfigured()
	var chatHandler *handlers.ChatHandler
	if !keyConfigured {
		log.Println("✗ GEMINI_API_KEY not configured; /api/chat will report a configuration error")
		chatHandler = handlers.NewChatHandler(nil, cfg.GeminiModel, false)
	} else {
		geminiService, err := services.NewGeminiService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("✗ Gemini client initialization failed: %v", err)
			chatHandler = handlers.NewChatHandler(nil, cfg.GeminiModel, true)
		} else {
			defer geminiService.Close()
			log.Printf("✓ Gemini client initialized (%s)", geminiService.ModelName())
			chatHandler = handlers.NewChatHandler(geminiService, cfg.GeminiModel, true)
		}
	}

	// ──── Step 3: Start HTTP Server ────
	r := router.New(chatHandler, cfg.StaticDir, cfg.CORSOrigin)

	// No write timeout: a generation call runs until Gemini answers.
	server := &http.Server{
		Addr:        fmt.Sprintf("0.0.0.0:%s", cfg.Port),
		Handler:     r,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Second,
		IdleTimeout: time.Duration(cfg.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Println("=================================")
	log.Printf("✓ Rehnuma Server ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)
	log.Println("=================================")

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
