package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JoiePasaol/client-management-sub000/internal/api"
	"github.com/JoiePasaol/client-management-sub000/internal/api/metrics"
	"github.com/JoiePasaol/client-management-sub000/internal/infrastructure/config"
	"github.com/JoiePasaol/client-management-sub000/internal/infrastructure/db/postgres"
	redisinfra "github.com/JoiePasaol/client-management-sub000/internal/infrastructure/db/redis"
	"github.com/JoiePasaol/client-management-sub000/internal/infrastructure/queue"
	"github.com/JoiePasaol/client-management-sub000/internal/infrastructure/storage"
	"github.com/JoiePasaol/client-management-sub000/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "client-management",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(postgres.Config{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		DBName:   cfg.Postgres.DBName,
		SSLMode:  cfg.Postgres.SSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("postgres migration failed")
	}
	log.Info().Str("host", cfg.Postgres.Host).Msg("connected to postgres")

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	mc, err := storage.Connect(ctx, storage.Config{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		Bucket:    cfg.Minio.Bucket,
		UseSSL:    cfg.Minio.UseSSL,
		PublicURL: cfg.Minio.PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("minio connection failed")
	}
	log.Info().Str("bucket", cfg.Minio.Bucket).Msg("invoice store ready")

	q := queue.New(cfg.Queue.Workers, time.Duration(cfg.Queue.CooldownMS)*time.Millisecond, log)
	q.Start(ctx)
	metrics.RegisterQueueDepth(q.Depth)
	log.Info().Int("workers", cfg.Queue.Workers).Int("cooldown_ms", cfg.Queue.CooldownMS).Msg("store queue started")

	e := api.NewRouter(api.Dependencies{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Minio:  mc,
		Queue:  q,
		Logger: log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
