package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/jigsawlab/jigsaw-be/internal/models"
	"github.com/jigsawlab/jigsaw-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Each pre-generated puzzle uses the Normal board size.
const dailyDifficulty = 16

// DailyGenerator pre-generates one puzzle per category on a cron schedule
// so players always find fresh content without waiting on the image
// provider.
type DailyGenerator struct {
	puzzleSvc services.PuzzleServiceProvider
	eventSvc  services.EventServiceProvider
	schedule  cron.Schedule
	ticker    *time.Ticker
	done      chan bool
}

// NewDailyGenerator creates a generator for the given standard cron
// expression.
func NewDailyGenerator(puzzleSvc services.PuzzleServiceProvider, eventSvc services.EventServiceProvider, cronExpr string) (*DailyGenerator, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid daily puzzle cron expression %q: %w", cronExpr, err)
	}
	return &DailyGenerator{
		puzzleSvc: puzzleSvc,
		eventSvc:  eventSvc,
		schedule:  schedule,
		done:      make(chan bool),
	}, nil
}

// Run starts the generator's ticking loop.
func (g *DailyGenerator) Run() {
	log.Info().Msg("Starting daily puzzle generator")
	g.ticker = time.NewTicker(1 * time.Minute)
	defer g.ticker.Stop()

	next := g.schedule.Next(time.Now())
	for {
		select {
		case <-g.done:
			log.Info().Msg("Stopping daily puzzle generator")
			return
		case <-g.ticker.C:
			now := time.Now()
			if now.After(next) {
				go g.generateAll() // Run in a goroutine to not block the ticker
				next = g.schedule.Next(now)
			}
		}
	}
}

// Stop halts the generator.
func (g *DailyGenerator) Stop() {
	g.done <- true
}

// generateAll produces one puzzle per category. Failures are recorded and
// skipped; one bad category must not starve the rest.
func (g *DailyGenerator) generateAll() {
	for _, category := range models.Categories {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		_, err := g.puzzleSvc.Generate(ctx, category.ID, dailyDifficulty, "en")
		cancel()
		if err != nil {
			log.Error().Err(err).Str("category", category.ID).Msg("Daily puzzle generation failed")
			msg := fmt.Sprintf("Daily %s puzzle generation failed: %v", category.ID, err)
			g.eventSvc.CreateEvent("daily.generate.fail", "error", msg, nil)
		}
	}
}
