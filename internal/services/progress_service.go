package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jigsawlab/jigsaw-be/internal/models"
	"github.com/rs/zerolog/log"
)

// ProgressServiceProvider defines the interface for progress services.
type ProgressServiceProvider interface {
	Complete(ctx context.Context, userID, puzzleID string, timeTaken, difficulty int) (int, error)
	GetUserProgress(ctx context.Context, userID string) (models.User, []models.Progress, error)
}

// ProgressService records completed attempts and maintains user stats.
type ProgressService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewProgressService creates a new ProgressService.
func NewProgressService(db *sql.DB, eventSvc EventServiceProvider) *ProgressService {
	return &ProgressService{db: db, eventSvc: eventSvc}
}

// Score computes the score for a completed attempt: 10 points per piece
// plus a time bonus that runs out after 300 seconds.
func Score(difficulty, timeTaken int) int {
	bonus := 300 - timeTaken
	if bonus < 0 {
		bonus = 0
	}
	return difficulty*10 + bonus
}

// Complete records a finished puzzle attempt and returns the computed score.
// The puzzle's stored difficulty is authoritative: a disagreeing
// client-supplied value is logged and ignored. The user stat update is a
// single in-place increment so concurrent completions never lose an update.
func (s *ProgressService) Complete(ctx context.Context, userID, puzzleID string, timeTaken, difficulty int) (int, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM users WHERE id = ?", userID).Scan(&exists); err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	var storedDifficulty int
	err := s.db.QueryRowContext(ctx, "SELECT difficulty FROM puzzles WHERE id = ?", puzzleID).Scan(&storedDifficulty)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("puzzle %s: %w", puzzleID, ErrNotFound)
		}
		return 0, err
	}
	if difficulty != 0 && difficulty != storedDifficulty {
		log.Warn().Str("puzzle_id", puzzleID).Int("claimed", difficulty).Int("stored", storedDifficulty).
			Msg("Claimed difficulty disagrees with stored puzzle, using stored")
	}

	score := Score(storedDifficulty, timeTaken)

	progress := models.Progress{
		ID:          uuid.New().String(),
		UserID:      userID,
		PuzzleID:    puzzleID,
		TimeTaken:   timeTaken,
		Score:       score,
		Difficulty:  storedDifficulty,
		CompletedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO progress(id, user_id, puzzle_id, time_taken, score, difficulty, completed_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
		progress.ID, progress.UserID, progress.PuzzleID, progress.TimeTaken, progress.Score, progress.Difficulty, progress.CompletedAt)
	if err != nil {
		return 0, err
	}

	// Atomic increment, never read-modify-write.
	_, err = s.db.ExecContext(ctx,
		"UPDATE users SET total_score = total_score + ?, puzzles_completed = puzzles_completed + 1 WHERE id = ?",
		score, userID)
	if err != nil {
		return 0, err
	}

	if s.eventSvc != nil {
		s.eventSvc.CreateEvent("puzzle.completed", "info",
			fmt.Sprintf("Puzzle completed for %d points", score), &userID)
	}

	return score, nil
}

// GetUserProgress returns the user's cumulative stats plus all of their
// progress records.
func (s *ProgressService) GetUserProgress(ctx context.Context, userID string) (models.User, []models.Progress, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, email, total_score, puzzles_completed, preferred_language, created_at FROM users WHERE id = ?",
		userID)
	err := row.Scan(&user.ID, &user.Username, &user.Email,
		&user.TotalScore, &user.PuzzlesCompleted, &user.PreferredLanguage, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return models.User{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, puzzle_id, time_taken, score, difficulty, completed_at FROM progress WHERE user_id = ?",
		userID)
	if err != nil {
		return models.User{}, nil, err
	}
	defer rows.Close()

	progress := []models.Progress{}
	for rows.Next() {
		var p models.Progress
		if err := rows.Scan(&p.ID, &p.UserID, &p.PuzzleID, &p.TimeTaken, &p.Score, &p.Difficulty, &p.CompletedAt); err != nil {
			return models.User{}, nil, err
		}
		progress = append(progress, p)
	}
	return user, progress, rows.Err()
}
