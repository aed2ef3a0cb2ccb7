package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jigsawlab/jigsaw-be/internal/api"
	"github.com/jigsawlab/jigsaw-be/internal/auth"
	"github.com/jigsawlab/jigsaw-be/internal/config"
	"github.com/jigsawlab/jigsaw-be/internal/database"
	"github.com/jigsawlab/jigsaw-be/internal/imagegen"
	"github.com/jigsawlab/jigsaw-be/internal/logger"
	"github.com/jigsawlab/jigsaw-be/internal/monitoring"
	"github.com/jigsawlab/jigsaw-be/internal/services"
	"github.com/jigsawlab/jigsaw-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	auth.Init(cfg.JWTSecret)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up image generation client
	generator := imagegen.New(cfg.ImageGenBaseURL, cfg.ImageGenAPIKey, cfg.ImageGenModel)

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(db, hub)
	userService := services.NewUserService(db, eventService)
	puzzleService := services.NewPuzzleService(db, generator, eventService)
	progressService := services.NewProgressService(db, eventService)
	leaderboardService := services.NewLeaderboardService(db)

	// Set up and run the daily puzzle generator when configured
	var dailyGenerator *monitoring.DailyGenerator
	if cfg.DailyPuzzleCron != "" {
		dailyGenerator, err = monitoring.NewDailyGenerator(puzzleService, eventService, cfg.DailyPuzzleCron)
		if err != nil {
			log.Fatalf("Failed to set up daily puzzle generator: %v", err)
		}
		go dailyGenerator.Run()
	}

	// Set up router
	router := api.NewRouter(cfg.AllowedOrigins, hub, userService, puzzleService, progressService, leaderboardService, eventService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if dailyGenerator != nil {
		dailyGenerator.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
