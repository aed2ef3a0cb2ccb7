package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jigsawlab/jigsaw-be/internal/api/handlers"
	"github.com/jigsawlab/jigsaw-be/internal/auth"
	"github.com/jigsawlab/jigsaw-be/internal/services"
	"github.com/jigsawlab/jigsaw-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	allowedOrigins []string,
	hub *websocket.Hub,
	userService services.UserServiceProvider,
	puzzleService services.PuzzleServiceProvider,
	progressService services.ProgressServiceProvider,
	leaderboardService services.LeaderboardServiceProvider,
	eventService services.EventServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	puzzleHandler := handlers.NewPuzzleHandler(puzzleService)
	progressHandler := handlers.NewProgressHandler(progressService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	eventHandler := handlers.NewEventHandler(eventService)
	healthHandler := handlers.NewHealthHandler()
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Get("/health", healthHandler.Get)

	r.Route("/api", func(r chi.Router) {
		// WebSocket connection endpoint
		r.Get("/ws", wsHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(auth.JWTMiddleware()).Get("/me", authHandler.GetMe)
		})

		r.Route("/puzzles", func(r chi.Router) {
			r.Get("/categories", puzzleHandler.GetCategories)
			r.Get("/difficulties", puzzleHandler.GetDifficulties)
			r.Post("/generate", puzzleHandler.Generate)
			r.Get("/", puzzleHandler.List)
			r.Get("/{id}", puzzleHandler.Get)
		})

		r.Route("/progress", func(r chi.Router) {
			r.Post("/complete", progressHandler.Complete)
			r.Get("/user/{id}", progressHandler.GetUserProgress)
		})

		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/global", leaderboardHandler.Global)
			r.Get("/category/{category}", leaderboardHandler.Category)
		})

		r.Get("/events", eventHandler.GetRecent)
	})

	return r
}
