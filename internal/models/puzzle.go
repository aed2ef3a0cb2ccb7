package models

import "time"

// Puzzle is a generated image plus the metadata a game session needs.
// Records are immutable once written.
type Puzzle struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Difficulty  int       `json:"difficulty"` // total piece count: 9, 16, 25, 36, 49, 64
	ImageBase64 string    `json:"image_base64"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category is one entry of the fixed category table.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// DifficultyLevel is one entry of the fixed difficulty table.
type DifficultyLevel struct {
	Level  int    `json:"level"`
	Name   string `json:"name"`
	Pieces string `json:"pieces"`
}

// Categories is the fixed set of puzzle categories.
var Categories = []Category{
	{ID: "animals", Name: "Animals", Icon: "🐾"},
	{ID: "nature", Name: "Nature", Icon: "🌿"},
	{ID: "food", Name: "Food", Icon: "🍎"},
	{ID: "objects", Name: "Objects", Icon: "📱"},
	{ID: "vehicles", Name: "Vehicles", Icon: "🚗"},
	{ID: "buildings", Name: "Buildings", Icon: "🏢"},
}

// DifficultyLevels is the fixed set of board sizes.
var DifficultyLevels = []DifficultyLevel{
	{Level: 9, Name: "Easy", Pieces: "3x3"},
	{Level: 16, Name: "Normal", Pieces: "4x4"},
	{Level: 25, Name: "Hard", Pieces: "5x5"},
	{Level: 36, Name: "Expert", Pieces: "6x6"},
	{Level: 49, Name: "Master", Pieces: "7x7"},
	{Level: 64, Name: "Extreme", Pieces: "8x8"},
}

// ValidDifficulty reports whether level is one of the fixed board sizes.
func ValidDifficulty(level int) bool {
	for _, d := range DifficultyLevels {
		if d.Level == level {
			return true
		}
	}
	return false
}
