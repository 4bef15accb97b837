package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"ai-recipe-assistant/internal/shopping"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListShopping(w http.ResponseWriter, r *http.Request) {
	items, err := s.shoppingRepo.List(r.Context())
	if err != nil {
		log.Printf("Error fetching shopping list: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch shopping list")
		return
	}
	if items == nil {
		items = []shopping.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

type addItemRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAddShoppingItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := s.shoppingRepo.Insert(r.Context(), req.Name)
	if err != nil {
		log.Printf("Error adding shopping item: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to add shopping item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleBulkAddShopping(w http.ResponseWriter, r *http.Request) {
	var names []string
	if err := json.NewDecoder(r.Body).Decode(&names); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count, err := s.shoppingRepo.BulkInsert(r.Context(), names)
	if err != nil {
		log.Printf("Error adding bulk shopping items: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to add shopping items")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Added %d items to shopping list", count),
	})
}

func (s *Server) handleDeleteShoppingItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := s.shoppingRepo.Delete(r.Context(), id)
	if err != nil {
		log.Printf("Error deleting shopping item: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete shopping item")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Shopping item not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Shopping item deleted successfully"})
}

func (s *Server) handleClearShopping(w http.ResponseWriter, r *http.Request) {
	count, err := s.shoppingRepo.DeleteAll(r.Context())
	if err != nil {
		log.Printf("Error clearing shopping list: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to clear shopping list")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Cleared %d items from shopping list", count),
	})
}
