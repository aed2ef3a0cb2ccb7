package models

import "time"

// User represents a player account.
type User struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"` // Never expose this to the client
	TotalScore        int       `json:"total_score"`
	PuzzlesCompleted  int       `json:"puzzles_completed"`
	PreferredLanguage string    `json:"preferred_language"`
	CreatedAt         time.Time `json:"created_at"`
}
