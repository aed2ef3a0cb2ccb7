package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jigsawlab/jigsaw-be/internal/services"
	"github.com/rs/zerolog/log"
)

// LeaderboardHandler handles HTTP requests for leaderboards.
type LeaderboardHandler struct {
	service services.LeaderboardServiceProvider
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(service services.LeaderboardServiceProvider) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// Global handles the request for the global leaderboard.
func (h *LeaderboardHandler) Global(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Global(r.Context(), parseLimit(r, 50))
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute global leaderboard")
		http.Error(w, "Failed to retrieve leaderboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// Category handles the request for a category-scoped leaderboard.
func (h *LeaderboardHandler) Category(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	entries, err := h.service.Category(r.Context(), category, parseLimit(r, 50))
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("Failed to compute category leaderboard")
		http.Error(w, "Failed to retrieve leaderboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func parseLimit(r *http.Request, fallback int) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
