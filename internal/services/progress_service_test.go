package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jigsawlab/jigsaw-be/internal/services"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		difficulty int
		timeTaken  int
		want       int
	}{
		{"easy board with time bonus", 9, 180, 210},
		{"hard board past the bonus window", 25, 400, 250},
		{"instant completion gets full bonus", 64, 0, 940},
		{"bonus boundary", 16, 300, 160},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, services.Score(tt.difficulty, tt.timeTaken))
		})
	}
}

func TestProgressService_Complete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userSvc := services.NewUserService(db, nil)
	puzzleSvc := services.NewPuzzleService(db, &stubGenerator{images: [][]byte{[]byte("img")}}, nil)
	progressSvc := services.NewProgressService(db, services.NewEventService(db, nil))

	user, err := userSvc.Register(ctx, "alice", "alice@example.com", "pw", "en")
	require.NoError(t, err)
	puzzle, err := puzzleSvc.Generate(ctx, "animals", 25, "en")
	require.NoError(t, err)

	score, err := progressSvc.Complete(ctx, user.ID, puzzle.ID, 100, puzzle.Difficulty)
	require.NoError(t, err)
	require.Equal(t, services.Score(25, 100), score)

	got, progress, err := progressSvc.GetUserProgress(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, score, got.TotalScore)
	require.Equal(t, 1, got.PuzzlesCompleted)
	require.Len(t, progress, 1)
	require.Equal(t, puzzle.ID, progress[0].PuzzleID)
	require.Equal(t, 25, progress[0].Difficulty)
	require.Equal(t, 100, progress[0].TimeTaken)
}

func TestProgressService_Complete_StoredDifficultyWins(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userSvc := services.NewUserService(db, nil)
	puzzleSvc := services.NewPuzzleService(db, &stubGenerator{images: [][]byte{[]byte("img")}}, nil)
	progressSvc := services.NewProgressService(db, nil)

	user, err := userSvc.Register(ctx, "bob", "bob@example.com", "pw", "en")
	require.NoError(t, err)
	puzzle, err := puzzleSvc.Generate(ctx, "nature", 9, "en")
	require.NoError(t, err)

	// Claim the hardest board on an easy puzzle.
	score, err := progressSvc.Complete(ctx, user.ID, puzzle.ID, 350, 64)
	require.NoError(t, err)
	require.Equal(t, services.Score(9, 350), score)

	_, progress, err := progressSvc.GetUserProgress(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 9, progress[0].Difficulty)
}

func TestProgressService_Complete_UnknownUserOrPuzzle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userSvc := services.NewUserService(db, nil)
	puzzleSvc := services.NewPuzzleService(db, &stubGenerator{images: [][]byte{[]byte("img")}}, nil)
	progressSvc := services.NewProgressService(db, nil)

	user, err := userSvc.Register(ctx, "carol", "carol@example.com", "pw", "en")
	require.NoError(t, err)
	puzzle, err := puzzleSvc.Generate(ctx, "food", 16, "en")
	require.NoError(t, err)

	_, err = progressSvc.Complete(ctx, "ghost", puzzle.ID, 10, 16)
	require.ErrorIs(t, err, services.ErrNotFound)

	_, err = progressSvc.Complete(ctx, user.ID, "ghost", 10, 16)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestProgressService_Complete_ConcurrentNoLostUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userSvc := services.NewUserService(db, nil)
	puzzleSvc := services.NewPuzzleService(db, &stubGenerator{images: [][]byte{[]byte("img")}}, nil)
	progressSvc := services.NewProgressService(db, nil)

	user, err := userSvc.Register(ctx, "dave", "dave@example.com", "pw", "en")
	require.NoError(t, err)
	puzzle, err := puzzleSvc.Generate(ctx, "vehicles", 16, "en")
	require.NoError(t, err)

	const completions = 16
	perScore := services.Score(16, 50)

	var wg sync.WaitGroup
	errs := make(chan error, completions)
	for i := 0; i < completions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := progressSvc.Complete(ctx, user.ID, puzzle.ID, 50, 16)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, progress, err := progressSvc.GetUserProgress(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, completions, got.PuzzlesCompleted)
	require.Equal(t, completions*perScore, got.TotalScore)
	require.Len(t, progress, completions)
}

func TestProgressService_GetUserProgress_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	progressSvc := services.NewProgressService(db, nil)

	_, _, err := progressSvc.GetUserProgress(context.Background(), "missing")
	require.ErrorIs(t, err, services.ErrNotFound)
}
