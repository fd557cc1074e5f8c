package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/easyhomework/backend/internal/auth"
	"github.com/easyhomework/backend/internal/config"
	"github.com/easyhomework/backend/internal/logging"
	"github.com/easyhomework/backend/internal/response"
	"github.com/easyhomework/backend/internal/server"
	"github.com/easyhomework/backend/internal/store"
	"github.com/easyhomework/backend/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// ── PostgreSQL ────────────────────────────────────────────
	pgPool, err := store.NewPool(ctx, cfg.DatabaseURL, cfg.Production)
	if err != nil {
		logger.Fatal("postgres connect", zap.Error(err))
	}
	defer pgPool.Close()
	pgStore := store.NewPostgresStore(pgPool)
	if err := pgStore.Migrate(ctx); err != nil {
		logger.Fatal("postgres migrate", zap.Error(err))
	}

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Fatal("redis connect", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	} else {
		logger.Info("REDIS_ADDR not set, teacher login activity is not recorded")
	}
	activity := auth.NewActivityLog(rdb)

	// ── Handlers ─────────────────────────────────────────────
	tokens := auth.NewTokens(cfg.JWTSecret, auth.TokenTTL)
	errs := response.NewWriter(logger, cfg.HideInternalErrors)
	authSvc := auth.NewService(pgStore, tokens, activity, logger.Named("auth"))

	handler := server.NewRouter(server.Deps{
		Auth:        auth.NewHandler(authSvc, errs),
		Tasks:       tasks.NewHandler(pgStore, errs),
		Tokens:      tokens,
		Errors:      errs,
		Logger:      logger.Named("http"),
		CORSOrigins: cfg.CORSOrigins,
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("EasyHomework API listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
