package services_test

import (
	"context"
	"testing"

	"github.com/jigsawlab/jigsaw-be/internal/models"
	"github.com/jigsawlab/jigsaw-be/internal/services"
	"github.com/stretchr/testify/require"
)

type leaderboardFixture struct {
	users       *services.UserService
	puzzles     *services.PuzzleService
	progress    *services.ProgressService
	leaderboard *services.LeaderboardService
}

func newLeaderboardFixture(t *testing.T) *leaderboardFixture {
	t.Helper()
	db := newTestDB(t)
	return &leaderboardFixture{
		users:       services.NewUserService(db, nil),
		puzzles:     services.NewPuzzleService(db, &stubGenerator{images: [][]byte{[]byte("img")}}, nil),
		progress:    services.NewProgressService(db, nil),
		leaderboard: services.NewLeaderboardService(db),
	}
}

func (f *leaderboardFixture) registerUser(t *testing.T, name string) models.User {
	t.Helper()
	user, err := f.users.Register(context.Background(), name, name+"@example.com", "pw", "en")
	require.NoError(t, err)
	return user
}

func (f *leaderboardFixture) generatePuzzle(t *testing.T, category string, difficulty int) models.Puzzle {
	t.Helper()
	puzzle, err := f.puzzles.Generate(context.Background(), category, difficulty, "en")
	require.NoError(t, err)
	return puzzle
}

func (f *leaderboardFixture) complete(t *testing.T, user models.User, puzzle models.Puzzle, timeTaken int) int {
	t.Helper()
	score, err := f.progress.Complete(context.Background(), user.ID, puzzle.ID, timeTaken, puzzle.Difficulty)
	require.NoError(t, err)
	return score
}

func TestLeaderboardService_Global(t *testing.T) {
	f := newLeaderboardFixture(t)
	ctx := context.Background()

	alice := f.registerUser(t, "alice")
	bob := f.registerUser(t, "bob")
	idle := f.registerUser(t, "idle")

	animals := f.generatePuzzle(t, "animals", 25)
	nature := f.generatePuzzle(t, "nature", 9)

	aliceScore := f.complete(t, alice, animals, 100) // 250 + 200 = 450
	bobScore := f.complete(t, bob, nature, 200)      // 90 + 100 = 190
	bobScore += f.complete(t, bob, animals, 400)     // 250 + 0 = 250

	entries, err := f.leaderboard.Global(ctx, 50)
	require.NoError(t, err)
	require.Len(t, entries, 3, "global board includes users with no completions")

	// Sorted by total score descending.
	require.Equal(t, alice.ID, entries[0].UserID)
	require.Equal(t, aliceScore, entries[0].TotalScore)
	require.Equal(t, 1, entries[0].PuzzlesCompleted)
	require.InDelta(t, 100.0, entries[0].AverageTime, 0.001)

	require.Equal(t, bob.ID, entries[1].UserID)
	require.Equal(t, bobScore, entries[1].TotalScore)
	require.Equal(t, 2, entries[1].PuzzlesCompleted)
	require.InDelta(t, 300.0, entries[1].AverageTime, 0.001)

	require.Equal(t, idle.ID, entries[2].UserID)
	require.Zero(t, entries[2].TotalScore)
	require.Zero(t, entries[2].AverageTime, "no completions means average time 0")
}

func TestLeaderboardService_Global_Limit(t *testing.T) {
	f := newLeaderboardFixture(t)

	f.registerUser(t, "u1")
	f.registerUser(t, "u2")
	f.registerUser(t, "u3")

	entries, err := f.leaderboard.Global(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestLeaderboardService_Category(t *testing.T) {
	f := newLeaderboardFixture(t)
	ctx := context.Background()

	alice := f.registerUser(t, "alice")
	bob := f.registerUser(t, "bob")
	f.registerUser(t, "idle")

	animals := f.generatePuzzle(t, "animals", 16)
	nature := f.generatePuzzle(t, "nature", 16)

	// Alice plays both categories, bob plays only nature.
	aliceAnimals := f.complete(t, alice, animals, 100)
	f.complete(t, alice, nature, 100)
	f.complete(t, bob, nature, 10)
	f.complete(t, bob, nature, 20)

	entries, err := f.leaderboard.Category(ctx, "animals", 50)
	require.NoError(t, err)
	require.Len(t, entries, 1, "users with no completion in the category are excluded")
	require.Equal(t, alice.ID, entries[0].UserID)
	require.Equal(t, aliceAnimals, entries[0].TotalScore)
	require.Equal(t, 1, entries[0].PuzzlesCompleted)
	require.Zero(t, entries[0].AverageTime, "category boards do not compute average time")

	entries, err = f.leaderboard.Category(ctx, "nature", 50)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, bob.ID, entries[0].UserID, "two nature completions outscore one")
	require.Equal(t, 2, entries[0].PuzzlesCompleted)
}

func TestLeaderboardService_Category_Empty(t *testing.T) {
	f := newLeaderboardFixture(t)
	f.registerUser(t, "alice")

	entries, err := f.leaderboard.Category(context.Background(), "buildings", 50)
	require.NoError(t, err)
	require.Empty(t, entries)
}
