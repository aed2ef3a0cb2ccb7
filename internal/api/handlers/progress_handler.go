package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jigsawlab/jigsaw-be/internal/services"
	"github.com/rs/zerolog/log"
)

// ProgressHandler handles HTTP requests related to puzzle completion.
type ProgressHandler struct {
	service services.ProgressServiceProvider
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(service services.ProgressServiceProvider) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// CompletePayload defines the structure for completion requests.
type CompletePayload struct {
	UserID     string `json:"user_id"`
	PuzzleID   string `json:"puzzle_id"`
	TimeTaken  int    `json:"time_taken"`
	Difficulty int    `json:"difficulty"`
}

// Complete handles the request to record a finished puzzle attempt.
func (h *ProgressHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var payload CompletePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.UserID == "" || payload.PuzzleID == "" {
		http.Error(w, "user_id and puzzle_id are required", http.StatusBadRequest)
		return
	}
	if payload.TimeTaken < 0 {
		http.Error(w, "time_taken must not be negative", http.StatusBadRequest)
		return
	}

	score, err := h.service.Complete(r.Context(), payload.UserID, payload.PuzzleID, payload.TimeTaken, payload.Difficulty)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("user_id", payload.UserID).Str("puzzle_id", payload.PuzzleID).Msg("Failed to record completion")
		http.Error(w, "Failed to record completion", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Puzzle completed!",
		"score":   score,
	})
}

// GetUserProgress handles the request for a user's stats and history.
func (h *ProgressHandler) GetUserProgress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, progress, err := h.service.GetUserProgress(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("user_id", id).Msg("Failed to get user progress")
		http.Error(w, "Failed to retrieve progress", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user":              user,
		"progress":          progress,
		"total_score":       user.TotalScore,
		"puzzles_completed": user.PuzzlesCompleted,
	})
}
