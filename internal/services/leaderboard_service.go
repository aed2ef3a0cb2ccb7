package services

import (
	"context"
	"database/sql"

	"github.com/jigsawlab/jigsaw-be/internal/models"
)

// LeaderboardServiceProvider defines the interface for leaderboard services.
type LeaderboardServiceProvider interface {
	Global(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	Category(ctx context.Context, category string, limit int) ([]models.LeaderboardEntry, error)
}

// LeaderboardService ranks users by their aggregated scores.
type LeaderboardService struct {
	db *sql.DB
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(db *sql.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// Global ranks every user by cumulative total_score, including users who
// have never completed a puzzle (average_time 0). Ties break on user ID so
// results are reproducible.
func (s *LeaderboardService) Global(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.total_score, u.puzzles_completed,
		       COALESCE(AVG(p.time_taken), 0) AS average_time
		FROM users u
		LEFT JOIN progress p ON p.user_id = u.id
		GROUP BY u.id
		ORDER BY u.total_score DESC, u.id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Category ranks users by the summed score of their completions in one
// category. Users with no completed puzzle in the category are excluded,
// and average_time is not computed for category boards.
func (s *LeaderboardService) Category(ctx context.Context, category string, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.username, SUM(p.score) AS category_score,
		       COUNT(p.id) AS category_completed, 0 AS average_time
		FROM users u
		JOIN progress p ON p.user_id = u.id
		JOIN puzzles z ON z.id = p.puzzle_id
		WHERE z.category = ?
		GROUP BY u.id
		ORDER BY category_score DESC, u.id ASC
		LIMIT ?`, category, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]models.LeaderboardEntry, error) {
	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.TotalScore, &e.PuzzlesCompleted, &e.AverageTime); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
