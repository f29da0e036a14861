package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"medipredict/internal/config"
	httpapi "medipredict/internal/http"
	"medipredict/internal/inference"
	"medipredict/internal/repository"
	"medipredict/internal/service"
	"medipredict/internal/store"
	"medipredict/pkg/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "medipredict")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Session/duplicate-upload KV: Redis when configured, otherwise a
	// process-local map (dev).
	var kv store.KV
	var redisClient *redis.Client
	if cfg.RedisEnabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		kv = store.NewRedisKV(redisClient)
		log.Info("Redis enabled", zap.String("addr", cfg.Redis.Addr))
	} else {
		kv = store.NewMemoryKV()
	}
	sessions := store.NewSessionStore(kv, cfg.SessionTTL)

	// History persistence: Postgres when configured, memory fallback so
	// the gateway still starts without a DB.
	var db *sql.DB
	var predictions repository.PredictionsRepository = repository.NewMemoryPredictionsRepository()
	if cfg.DBEnabled {
		if d, err := repository.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			predictions = repository.NewPostgresPredictionsRepository(db)
			log.Info("DB enabled for prediction history")
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory repo", zap.Error(err))
		}
	}

	inferenceClient := inference.NewClient(cfg.Inference.BaseURL, cfg.Inference.Timeout, log)
	authClient := httpapi.NewAuthClient(cfg.Inference.BaseURL, cfg.Inference.Timeout, log)

	router := httpapi.NewRouter(log)
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(authClient, sessions, log))
	router.RegisterPredictRoutes(httpapi.NewPredictHandler(inferenceClient, sessions, predictions, kv, log))
	router.RegisterHistoryRoutes(httpapi.NewHistoryHandler(sessions, predictions, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case err := <-errCh:
		log.Error("HTTP server stopped", zap.Error(err))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}
