package models

// LeaderboardEntry is one ranked row of a leaderboard projection.
// For the category leaderboard, TotalScore and PuzzlesCompleted carry the
// category-scoped sums and AverageTime is always 0.
type LeaderboardEntry struct {
	UserID           string  `json:"user_id"`
	Username         string  `json:"username"`
	TotalScore       int     `json:"total_score"`
	PuzzlesCompleted int     `json:"puzzles_completed"`
	AverageTime      float64 `json:"average_time"`
}
