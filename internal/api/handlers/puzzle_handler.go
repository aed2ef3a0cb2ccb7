package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jigsawlab/jigsaw-be/internal/models"
	"github.com/jigsawlab/jigsaw-be/internal/services"
	"github.com/rs/zerolog/log"
)

// PuzzleHandler handles HTTP requests related to puzzles.
type PuzzleHandler struct {
	service services.PuzzleServiceProvider
}

// NewPuzzleHandler creates a new PuzzleHandler.
func NewPuzzleHandler(service services.PuzzleServiceProvider) *PuzzleHandler {
	return &PuzzleHandler{service: service}
}

// GeneratePayload defines the structure for puzzle generation requests.
type GeneratePayload struct {
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
	Language   string `json:"language"`
}

// GetCategories returns the fixed category table.
func (h *PuzzleHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.Categories)
}

// GetDifficulties returns the fixed difficulty table.
func (h *PuzzleHandler) GetDifficulties(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.DifficultyLevels)
}

// Generate handles the request to generate a new puzzle.
func (h *PuzzleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var payload GeneratePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Category == "" {
		http.Error(w, "category is required", http.StatusBadRequest)
		return
	}
	if !models.ValidDifficulty(payload.Difficulty) {
		http.Error(w, "difficulty must be one of 9, 16, 25, 36, 49, 64", http.StatusBadRequest)
		return
	}

	puzzle, err := h.service.Generate(r.Context(), payload.Category, payload.Difficulty, payload.Language)
	if err != nil {
		log.Error().Err(err).Str("category", payload.Category).Msg("Failed to generate puzzle")
		http.Error(w, "Failed to generate image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(puzzle)
}

// List handles the request to list puzzles with optional filters.
func (h *PuzzleHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")
	difficulty, _ := strconv.Atoi(q.Get("difficulty"))
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	puzzles, err := h.service.List(r.Context(), category, difficulty, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list puzzles")
		http.Error(w, "Failed to retrieve puzzles", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(puzzles)
}

// Get handles the request to get a single puzzle by its ID.
func (h *PuzzleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	puzzle, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Puzzle not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("puzzle_id", id).Msg("Failed to get puzzle")
		http.Error(w, "Failed to retrieve puzzle", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(puzzle)
}
