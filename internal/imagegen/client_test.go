package imagegen_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jigsawlab/jigsaw-be/internal/imagegen"
	"github.com/stretchr/testify/require"
)

func TestClient_Generate(t *testing.T) {
	raw := []byte("not-really-a-png")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/images/generations", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "gpt-image-1", req["model"])
		require.Equal(t, float64(1), req["n"])
		require.NotEmpty(t, req["prompt"])

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{
				{"b64_json": base64.StdEncoding.EncodeToString(raw)},
			},
		})
	}))
	defer srv.Close()

	client := imagegen.New(srv.URL, "test-key", "gpt-image-1")
	images, err := client.Generate(context.Background(), "a puzzle image", 1)
	require.NoError(t, err)
	require.Len(t, images, 1)
	require.Equal(t, raw, images[0])
}

func TestClient_Generate_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := imagegen.New(srv.URL, "test-key", "gpt-image-1")
	_, err := client.Generate(context.Background(), "a puzzle image", 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestClient_Generate_EmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	client := imagegen.New(srv.URL, "test-key", "gpt-image-1")
	images, err := client.Generate(context.Background(), "a puzzle image", 1)
	require.NoError(t, err)
	require.Empty(t, images, "empty provider response surfaces as zero images, not an error")
}

func TestClient_Generate_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := imagegen.New(srv.URL, "test-key", "gpt-image-1")
	_, err := client.Generate(ctx, "a puzzle image", 1)
	require.Error(t, err)
}
