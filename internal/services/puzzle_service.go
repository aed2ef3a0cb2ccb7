package services

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jigsawlab/jigsaw-be/internal/imagegen"
	"github.com/jigsawlab/jigsaw-be/internal/models"
	"github.com/rs/zerolog/log"
)

// categoryPrompts maps each category to the prompt sent to the image
// provider. Unknown categories fall back to defaultPrompt.
var categoryPrompts = map[string]string{
	"animals":   "A beautiful, clear photo of a cute animal in its natural habitat, perfect for a jigsaw puzzle",
	"nature":    "A stunning landscape or nature scene with vibrant colors, perfect for a jigsaw puzzle",
	"food":      "A delicious, colorful food item or meal that looks appetizing, perfect for a jigsaw puzzle",
	"objects":   "A common everyday object with clear details and good lighting, perfect for a jigsaw puzzle",
	"vehicles":  "A cool vehicle like a car, plane, or boat with clear details, perfect for a jigsaw puzzle",
	"buildings": "An interesting building or architectural structure with clear details, perfect for a jigsaw puzzle",
}

const defaultPrompt = "A beautiful, detailed image perfect for a jigsaw puzzle"

// PuzzleServiceProvider defines the interface for puzzle services.
type PuzzleServiceProvider interface {
	Generate(ctx context.Context, category string, difficulty int, language string) (models.Puzzle, error)
	List(ctx context.Context, category string, difficulty, limit int) ([]models.Puzzle, error)
	GetByID(ctx context.Context, id string) (models.Puzzle, error)
}

// PuzzleService generates and serves puzzles.
type PuzzleService struct {
	db        *sql.DB
	generator imagegen.Generator
	eventSvc  EventServiceProvider
}

// NewPuzzleService creates a new PuzzleService.
func NewPuzzleService(db *sql.DB, generator imagegen.Generator, eventSvc EventServiceProvider) *PuzzleService {
	return &PuzzleService{db: db, generator: generator, eventSvc: eventSvc}
}

// Generate requests one image for the category's prompt, stores it base64
// encoded, and returns the new puzzle record. Every call creates a fresh
// image and record, even for identical parameters.
func (s *PuzzleService) Generate(ctx context.Context, category string, difficulty int, language string) (models.Puzzle, error) {
	prompt, ok := categoryPrompts[category]
	if !ok {
		prompt = defaultPrompt
	}
	if language == "" {
		language = "en"
	}

	images, err := s.generator.Generate(ctx, prompt, 1)
	if err != nil {
		return models.Puzzle{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(images) == 0 {
		return models.Puzzle{}, fmt.Errorf("%w: provider returned no images", ErrGenerationFailed)
	}

	puzzle := models.Puzzle{
		ID:          uuid.New().String(),
		Title:       titleCase(category) + " Puzzle",
		Category:    category,
		Difficulty:  difficulty,
		ImageBase64: base64.StdEncoding.EncodeToString(images[0]),
		Language:    language,
		CreatedAt:   time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO puzzles(id, title, category, difficulty, image_base64, language, created_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
		puzzle.ID, puzzle.Title, puzzle.Category, puzzle.Difficulty, puzzle.ImageBase64, puzzle.Language, puzzle.CreatedAt)
	if err != nil {
		return models.Puzzle{}, err
	}

	log.Info().Str("puzzle_id", puzzle.ID).Str("category", category).Int("difficulty", difficulty).Msg("Generated new puzzle")
	if s.eventSvc != nil {
		s.eventSvc.CreateEvent("puzzle.generated", "info", fmt.Sprintf("New %s puzzle (%d pieces)", category, difficulty), nil)
	}

	return puzzle, nil
}

// List returns up to limit puzzles, optionally filtered by exact category
// and/or difficulty, newest first (puzzles are append-only, so rowid order
// is creation order).
func (s *PuzzleService) List(ctx context.Context, category string, difficulty, limit int) ([]models.Puzzle, error) {
	if limit <= 0 {
		limit = 20
	}

	query := "SELECT id, title, category, difficulty, image_base64, language, created_at FROM puzzles"
	var conds []string
	var args []any
	if category != "" {
		conds = append(conds, "category = ?")
		args = append(args, category)
	}
	if difficulty > 0 {
		conds = append(conds, "difficulty = ?")
		args = append(args, difficulty)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	puzzles := []models.Puzzle{}
	for rows.Next() {
		var p models.Puzzle
		if err := rows.Scan(&p.ID, &p.Title, &p.Category, &p.Difficulty, &p.ImageBase64, &p.Language, &p.CreatedAt); err != nil {
			return nil, err
		}
		puzzles = append(puzzles, p)
	}
	return puzzles, rows.Err()
}

// GetByID retrieves a single puzzle by its ID.
func (s *PuzzleService) GetByID(ctx context.Context, id string) (models.Puzzle, error) {
	var p models.Puzzle
	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, category, difficulty, image_base64, language, created_at FROM puzzles WHERE id = ?", id)
	err := row.Scan(&p.ID, &p.Title, &p.Category, &p.Difficulty, &p.ImageBase64, &p.Language, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Puzzle{}, fmt.Errorf("puzzle %s: %w", id, ErrNotFound)
		}
		return models.Puzzle{}, err
	}
	return p, nil
}

// titleCase upper-cases the first rune, matching the generated titles of
// the original data set ("Animals Puzzle").
func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
