package server

import (
	"encoding/json"
	"log"
	"net/http"

	"ai-recipe-assistant/internal/config"
	"ai-recipe-assistant/internal/importer"
	"ai-recipe-assistant/internal/llm"
	"ai-recipe-assistant/internal/metrics"
	"ai-recipe-assistant/internal/settingsstore"
	"ai-recipe-assistant/internal/shopping"
	"ai-recipe-assistant/internal/status"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server holds the API's dependencies and exposes its router.
type Server struct {
	textGen      llm.TextGenerator
	recipeImport *importer.Importer
	shoppingRepo *shopping.Repository
	settingsRepo *settingsstore.Repository
	statusRepo   *status.Repository
	metricsStore *metrics.Store
	cfg          *config.Config
}

// New creates a Server.
func New(
	cfg *config.Config,
	textGen llm.TextGenerator,
	recipeImport *importer.Importer,
	shoppingRepo *shopping.Repository,
	settingsRepo *settingsstore.Repository,
	statusRepo *status.Repository,
	metricsStore *metrics.Store,
) *Server {
	return &Server{
		textGen:      textGen,
		recipeImport: recipeImport,
		shoppingRepo: shoppingRepo,
		settingsRepo: settingsRepo,
		statusRepo:   statusRepo,
		metricsStore: metricsStore,
		cfg:          cfg,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		if s.cfg.APIAuthKey != "" {
			api.Use(s.requireToken)
		}

		api.Get("/", s.handleRoot)
		api.Post("/recipes", s.handleRecipes)
		api.Post("/recipes/import", s.handleRecipeImport)
		api.Post("/translate", s.handleTranslate)
		api.Get("/settings", s.handleGetSettings)
		api.Post("/settings", s.handleSaveSettings)
		api.Get("/shopping-list", s.handleListShopping)
		api.Post("/shopping-list", s.handleAddShoppingItem)
		api.Post("/shopping-list/bulk", s.handleBulkAddShopping)
		api.Delete("/shopping-list", s.handleClearShopping)
		api.Delete("/shopping-list/{id}", s.handleDeleteShoppingItem)
		api.Post("/status", s.handleCreateStatus)
		api.Get("/status", s.handleListStatus)
		api.Get("/metrics/daily", s.handleDailyMetrics)
	})

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "AI Recipe & Grocery Assistant API"})
}

// writeJSON encodes v as the response with the given status.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError mirrors the {"detail": "..."} error shape clients expect.
func writeError(w http.ResponseWriter, statusCode int, detail string) {
	writeJSON(w, statusCode, map[string]string{"detail": detail})
}
