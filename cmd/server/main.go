package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talentgate/applicant-registry/internal/api"
	"github.com/talentgate/applicant-registry/internal/infrastructure/config"
	mongoinfra "github.com/talentgate/applicant-registry/internal/infrastructure/db/mongo"
	redisinfra "github.com/talentgate/applicant-registry/internal/infrastructure/db/redis"
	"github.com/talentgate/applicant-registry/internal/infrastructure/storage/fs"
	"github.com/talentgate/applicant-registry/pkg/logger"
)

// @title           Applicant Registry API
// @version         1.0
// @description     Registration and lookup service for applicant records with photo and CV uploads.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// Unique indexes are the final arbiter for duplicate passport
	// numbers and admin usernames; create them before serving traffic.
	if err := mongoinfra.NewApplicantRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("applicant index creation failed")
	}
	if err := mongoinfra.NewAuthRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("admin index creation failed")
	}

	blobs, err := fs.NewBlobStore(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("blob store init failed")
	}

	e := api.NewRouter(db, rdb, blobs, cfg.JWTSecret, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
