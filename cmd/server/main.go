package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dustatron/mcpoker/internal/app"
	"github.com/dustatron/mcpoker/internal/config"
	"github.com/dustatron/mcpoker/internal/transport/rest"
	"github.com/dustatron/mcpoker/internal/transport/ws"
)

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

	wsHub := ws.NewHub()
	a.SetBroadcaster(wsHub)

	container := &rest.Container{
		AuthService:        a.Auth,
		RoomService:        a.Rooms,
		ParticipantService: a.Participants,
		VoteService:        a.Votes,
		HistoryService:     a.History,
		MessageService:     a.Messages,
		WSHub:              wsHub,
	}

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: rest.NewRouter(container),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("mcpoker server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}
