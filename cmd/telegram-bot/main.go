package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-recipe-assistant/internal/api"
	"ai-recipe-assistant/internal/config"
	"ai-recipe-assistant/internal/prefs"
	"ai-recipe-assistant/internal/recipe"
	"ai-recipe-assistant/internal/search"
	"ai-recipe-assistant/internal/settings"
	"ai-recipe-assistant/internal/shoppinglist"
	"ai-recipe-assistant/internal/telegram"
	"ai-recipe-assistant/internal/voice"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatalf("Invalid telegram config: %v", err)
	}

	ctx := context.Background()

	client := api.NewClient(cfg)

	prefStore, err := prefs.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize preference store: %v", err)
	}

	settingsMgr := settings.NewManager(client, prefStore)
	settingsMgr.Load(ctx)

	orchestrator := search.NewOrchestrator(client)
	selection := recipe.NewSelection()
	list := shoppinglist.NewManager(client)

	// Voice input is optional; the bot asks for typed input without it.
	var transcriber search.Transcriber
	if cfg.GeminiAPIKey != "" {
		t, err := voice.NewTranscriber(ctx, cfg)
		if err != nil {
			log.Printf("Voice transcription unavailable: %v", err)
		} else {
			defer t.Close()
			transcriber = t
		}
	}

	bot, err := telegram.NewBot(cfg, client, settingsMgr, orchestrator, selection, list, transcriber)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
