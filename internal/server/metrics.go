package server

import (
	"log"
	"net/http"
	"strconv"

	"ai-recipe-assistant/internal/metrics"
)

func (s *Server) handleDailyMetrics(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid days parameter")
			return
		}
		days = parsed
	}

	usage, err := s.metricsStore.GetDailyUsage(r.Context(), days)
	if err != nil {
		log.Printf("Error fetching daily usage: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch metrics")
		return
	}
	if usage == nil {
		usage = []metrics.DailyUsage{}
	}
	writeJSON(w, http.StatusOK, usage)
}
