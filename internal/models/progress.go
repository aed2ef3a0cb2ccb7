package models

import "time"

// Progress is the immutable log entry of one completed puzzle attempt.
// Difficulty is a denormalized copy of the puzzle's difficulty at
// completion time.
type Progress struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	PuzzleID    string    `json:"puzzle_id"`
	TimeTaken   int       `json:"time_taken"` // seconds
	Score       int       `json:"score"`
	Difficulty  int       `json:"difficulty"`
	CompletedAt time.Time `json:"completed_at"`
}
