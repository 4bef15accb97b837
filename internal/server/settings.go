package server

import (
	"encoding/json"
	"log"
	"net/http"

	"ai-recipe-assistant/internal/settings"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	language, err := s.settingsRepo.PreferredLanguage(r.Context(), settings.DefaultLanguage)
	if err != nil {
		log.Printf("Error fetching user settings: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch user settings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"preferred_language": language})
}

type saveSettingsRequest struct {
	PreferredLanguage string `json:"preferred_language"`
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var req saveSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PreferredLanguage == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !settings.IsSupported(req.PreferredLanguage) {
		writeError(w, http.StatusBadRequest, "unsupported language")
		return
	}

	if err := s.settingsRepo.SetPreferredLanguage(r.Context(), req.PreferredLanguage); err != nil {
		log.Printf("Error updating user settings: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Settings updated successfully"})
}
