package services_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/jigsawlab/jigsaw-be/internal/services"
	"github.com/stretchr/testify/require"
)

// stubGenerator satisfies imagegen.Generator without a live provider.
type stubGenerator struct {
	images [][]byte
	err    error
	prompt string // last prompt seen
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string, n int) ([][]byte, error) {
	g.prompt = prompt
	return g.images, g.err
}

func TestPuzzleService_Generate(t *testing.T) {
	db := newTestDB(t)
	gen := &stubGenerator{images: [][]byte{[]byte("fake-png-bytes")}}
	svc := services.NewPuzzleService(db, gen, services.NewEventService(db, nil))

	puzzle, err := svc.Generate(context.Background(), "animals", 25, "")
	require.NoError(t, err)
	require.NotEmpty(t, puzzle.ID)
	require.Equal(t, "Animals Puzzle", puzzle.Title)
	require.Equal(t, "animals", puzzle.Category)
	require.Equal(t, 25, puzzle.Difficulty)
	require.Equal(t, "en", puzzle.Language)
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte("fake-png-bytes")), puzzle.ImageBase64)
	require.Contains(t, gen.prompt, "animal")

	// The record must be persisted as returned.
	stored, err := svc.GetByID(context.Background(), puzzle.ID)
	require.NoError(t, err)
	require.Equal(t, puzzle.ImageBase64, stored.ImageBase64)
}

func TestPuzzleService_Generate_UnknownCategoryFallsBack(t *testing.T) {
	db := newTestDB(t)
	gen := &stubGenerator{images: [][]byte{[]byte("img")}}
	svc := services.NewPuzzleService(db, gen, nil)

	puzzle, err := svc.Generate(context.Background(), "dinosaurs", 9, "en")
	require.NoError(t, err)
	require.Equal(t, "Dinosaurs Puzzle", puzzle.Title)
	require.Contains(t, gen.prompt, "beautiful, detailed image")
}

func TestPuzzleService_Generate_NoImages(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewPuzzleService(db, &stubGenerator{images: nil}, nil)

	_, err := svc.Generate(context.Background(), "nature", 16, "en")
	require.ErrorIs(t, err, services.ErrGenerationFailed)
}

func TestPuzzleService_Generate_ClientError(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewPuzzleService(db, &stubGenerator{err: errors.New("provider down")}, nil)

	_, err := svc.Generate(context.Background(), "nature", 16, "en")
	require.ErrorIs(t, err, services.ErrGenerationFailed)
}

func TestPuzzleService_Generate_NoDeduplication(t *testing.T) {
	db := newTestDB(t)
	gen := &stubGenerator{images: [][]byte{[]byte("img")}}
	svc := services.NewPuzzleService(db, gen, nil)
	ctx := context.Background()

	first, err := svc.Generate(ctx, "food", 36, "en")
	require.NoError(t, err)
	second, err := svc.Generate(ctx, "food", 36, "en")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	puzzles, err := svc.List(ctx, "food", 36, 20)
	require.NoError(t, err)
	require.Len(t, puzzles, 2)
}

func TestPuzzleService_List_Filters(t *testing.T) {
	db := newTestDB(t)
	gen := &stubGenerator{images: [][]byte{[]byte("img")}}
	svc := services.NewPuzzleService(db, gen, nil)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "animals", 9, "en")
	require.NoError(t, err)
	_, err = svc.Generate(ctx, "animals", 16, "en")
	require.NoError(t, err)
	_, err = svc.Generate(ctx, "nature", 9, "en")
	require.NoError(t, err)

	byCategory, err := svc.List(ctx, "animals", 0, 20)
	require.NoError(t, err)
	require.Len(t, byCategory, 2)

	byBoth, err := svc.List(ctx, "animals", 16, 20)
	require.NoError(t, err)
	require.Len(t, byBoth, 1)

	all, err := svc.List(ctx, "", 0, 2)
	require.NoError(t, err)
	require.Len(t, all, 2, "limit must cap results")
}

func TestPuzzleService_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewPuzzleService(db, &stubGenerator{}, nil)

	_, err := svc.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, services.ErrNotFound)
}
