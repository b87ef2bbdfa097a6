package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dustatron/mcpoker/internal/app"
	"github.com/dustatron/mcpoker/internal/config"
)

// Periodic maintenance worker: flags stale participants as disconnected
// and removes rooms with no activity for a day.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg := config.Load()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize")
	}
	defer a.Close(context.Background())

	log.Info().Dur("interval", cfg.SweepInterval).Msg("sweeper started")

	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("sweeper exiting")
			return
		case <-ticker.C:
			sweep(ctx, a)
		}
	}
}

func sweep(ctx context.Context, a *app.App) {
	if _, err := a.Participants.DisconnectInactive(ctx, 0); err != nil {
		log.Error().Err(err).Msg("failed to disconnect inactive participants")
	}
	if _, err := a.Rooms.CleanupInactiveRooms(ctx); err != nil {
		log.Error().Err(err).Msg("failed to clean up inactive rooms")
	}
}
