package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"swipematch/backend/internal/api/handler"
	"swipematch/backend/internal/config"
	"swipematch/backend/internal/discovery"
	"swipematch/backend/internal/localization"
	"swipematch/backend/internal/logger"
	"swipematch/backend/internal/models"
	"swipematch/backend/internal/seed"
	"swipematch/backend/internal/session"
	"swipematch/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupStorage connects PostgreSQL and Redis and runs the migrations.
func setupStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.Storage == "memory" {
		log.Warn().Msg("using in-memory storage, sessions will not survive a restart")
		return storage.NewMemory(), nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect PostgreSQL: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect Redis: %w", err)
	}

	log.Info().Msg("database and redis connections established, migrations complete")
	return storage.NewStorageService(db, rdb), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.LogLevel)
	log.Info().Str("addr", cfg.HTTPAddr).Str("storage", cfg.Storage).Msg("starting swipematch backend")

	pool, err := seed.LoadFile(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load candidate pool")
	}
	log.Info().Int("profiles", len(pool)).Msg("candidate pool loaded")

	store, err := setupStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("storage setup failed")
	}

	policy, err := discovery.NewProbabilityPolicy(nil, cfg.LikeProbability, cfg.SuperLikeProbability)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid decision policy")
	}
	log.Info().
		Float64("like", policy.Probability(models.DecisionLike)).
		Float64("superlike", policy.Probability(models.DecisionSuperLike)).
		Msg("match policy configured")

	loc, err := localization.Bundled()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load translations")
	}

	sessions := session.NewManager(pool, policy, store, nil)

	r := gin.Default()
	handler.NewHandler(sessions, loc, cfg.JWTSecret, cfg.TokenTTL).Register(r)

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server stopped")
	}
}
