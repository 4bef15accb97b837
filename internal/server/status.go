package server

import (
	"encoding/json"
	"log"
	"net/http"

	"ai-recipe-assistant/internal/status"
)

type createStatusRequest struct {
	ClientName string `json:"client_name"`
}

func (s *Server) handleCreateStatus(w http.ResponseWriter, r *http.Request) {
	var req createStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ClientName == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	check, err := s.statusRepo.Create(r.Context(), req.ClientName)
	if err != nil {
		log.Printf("Error creating status check: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create status check")
		return
	}
	writeJSON(w, http.StatusOK, check)
}

func (s *Server) handleListStatus(w http.ResponseWriter, r *http.Request) {
	checks, err := s.statusRepo.List(r.Context(), 1000)
	if err != nil {
		log.Printf("Error listing status checks: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list status checks")
		return
	}
	if checks == nil {
		checks = []status.Check{}
	}
	writeJSON(w, http.StatusOK, checks)
}
