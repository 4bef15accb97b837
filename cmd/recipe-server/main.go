package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-recipe-assistant/internal/config"
	"ai-recipe-assistant/internal/database"
	"ai-recipe-assistant/internal/importer"
	"ai-recipe-assistant/internal/llm"
	"ai-recipe-assistant/internal/metrics"
	"ai-recipe-assistant/internal/server"
	"ai-recipe-assistant/internal/settingsstore"
	"ai-recipe-assistant/internal/shopping"
	"ai-recipe-assistant/internal/status"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	if len(os.Args) > 1 && os.Args[1] == "metrics-cleanup" {
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		db, err := database.NewDB(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()

		affected, err := metrics.NewStore(db.SQL).Cleanup(ctx, *days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
		return
	}

	if err := cfg.RequireServer(); err != nil {
		log.Fatalf("Invalid server config: %v", err)
	}

	var textGen llm.TextGenerator
	switch cfg.LLMProvider {
	case "groq":
		textGen = llm.NewGroqClient(cfg)
	default:
		geminiClient, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		textGen = geminiClient
	}
	if closer, ok := textGen.(llm.Closer); ok {
		defer closer.Close()
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	shoppingRepo := shopping.NewRepository(db.SQL)
	settingsRepo := settingsstore.NewRepository(db.SQL)
	statusRepo := status.NewRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	recipeImport := importer.NewImporter(textGen)

	srv := server.New(cfg, textGen, recipeImport, shoppingRepo, settingsRepo, statusRepo, metricsStore)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:    ":" + port,
		Handler: srv.Router(),
	}

	go func() {
		log.Printf("Recipe API Server listening on port %s", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
