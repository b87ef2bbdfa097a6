// Package app wires repositories, caches, and services from configuration.
// Both the server and the sweeper binaries build the same graph.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dustatron/mcpoker/internal/cache"
	"github.com/dustatron/mcpoker/internal/config"
	"github.com/dustatron/mcpoker/internal/repository"
	"github.com/dustatron/mcpoker/internal/repository/memory"
	"github.com/dustatron/mcpoker/internal/service"
)

// App holds the assembled service graph and the clients behind it.
type App struct {
	Auth         *service.AuthService
	Rooms        *service.RoomService
	Participants *service.ParticipantService
	Votes        *service.VoteService
	History      *service.HistoryService
	Messages     *service.MessageService

	mongoClient *mongo.Client
	redisClient *redis.Client
}

// New connects the configured store and cache backends and builds the
// services. STORE_DRIVER=memory swaps MongoDB for the in-process store; an
// empty REDIS_ADDR disables the caches.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	var (
		roomRepo        repository.RoomRepo
		participantRepo repository.ParticipantRepo
		voteRepo        repository.VoteRepo
		historyRepo     repository.HistoryRepo
		messageRepo     repository.MessageRepo
	)

	switch cfg.StoreDriver {
	case "memory":
		store := memory.NewStore()
		roomRepo = store.Rooms()
		participantRepo = store.Participants()
		voteRepo = store.Votes()
		historyRepo = store.History()
		messageRepo = store.Messages()
		log.Warn().Msg("using in-memory store; data is lost on restart")

	case "mongo":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
		}
		log.Info().Str("db", cfg.MongoDB).Msg("connected to MongoDB")

		a.mongoClient = client
		db := client.Database(cfg.MongoDB)
		roomRepo = repository.NewRoomRepo(db)
		participantRepo = repository.NewParticipantRepo(db)
		voteRepo = repository.NewVoteRepo(db)
		historyRepo = repository.NewHistoryRepo(db)
		messageRepo = repository.NewMessageRepo(db)

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	var (
		roomCache   cache.RoomCache
		statusCache cache.StatusCache
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			return nil, fmt.Errorf("failed to ping Redis: %w", err)
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("connected to Redis")

		a.redisClient = rdb
		roomCache = cache.NewRoomCache(rdb)
		statusCache = cache.NewStatusCache(rdb)
	}

	a.Auth = service.NewAuthService(cfg.JWTSecret)
	a.Rooms = service.NewRoomService(roomRepo, participantRepo, voteRepo, historyRepo, messageRepo, roomCache, statusCache)
	a.Participants = service.NewParticipantService(participantRepo, voteRepo, a.Rooms, statusCache, a.Auth)
	a.Votes = service.NewVoteService(voteRepo, participantRepo, historyRepo, a.Rooms, statusCache)
	a.History = service.NewHistoryService(historyRepo)
	a.Messages = service.NewMessageService(messageRepo, participantRepo)

	return a, nil
}

// SetBroadcaster injects the WebSocket hub into every broadcasting service.
func (a *App) SetBroadcaster(b service.Broadcaster) {
	a.Rooms.SetBroadcaster(b)
	a.Participants.SetBroadcaster(b)
	a.Votes.SetBroadcaster(b)
	a.Messages.SetBroadcaster(b)
}

// Close releases the store and cache clients.
func (a *App) Close(ctx context.Context) {
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}
}
