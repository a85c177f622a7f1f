package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pageza/alchemorsel-pantry/backend/config"
	"github.com/pageza/alchemorsel-pantry/backend/internal/api"
	"github.com/pageza/alchemorsel-pantry/backend/internal/database"
	"github.com/pageza/alchemorsel-pantry/backend/internal/logging"
	"github.com/pageza/alchemorsel-pantry/backend/internal/middleware"
	"github.com/pageza/alchemorsel-pantry/backend/internal/server"
	"github.com/pageza/alchemorsel-pantry/backend/internal/service"
	"github.com/pageza/alchemorsel-pantry/backend/migrations"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := logging.NewFromConfig(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg, logger)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(ctx, db, migrations.FS, logger); err != nil {
		return err
	}

	// Rate limiting needs redis; without it generation is unlimited.
	var limiter *middleware.RateLimiter
	if redisClient, err := database.NewRedisClient(ctx, cfg, logger); err != nil {
		logger.Warn("redis unavailable, generation rate limiting disabled", slog.Any("error", err))
	} else {
		defer redisClient.Close()
		limiter = middleware.NewGenerationRateLimiter(redisClient, cfg.GenerationLimit, logger)
	}

	var archiver service.PayloadArchiver
	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		logger.Warn("failed to configure payload archive", slog.Any("error", err))
	}
	if a := service.NewS3Archiver(s3Config); a != nil {
		archiver = a
		logger.Info("archiving rejected generations", slog.String("bucket", cfg.ArchiveBucket))
	}

	completer, err := service.NewCompleter(ctx, cfg)
	if err != nil {
		return err
	}
	if c, ok := completer.(io.Closer); ok {
		defer c.Close()
	}

	srv := server.New(cfg, api.Dependencies{
		DB:         db,
		Auth:       service.NewAuthService(db, cfg.JWTSecret),
		Inventory:  service.NewInventoryService(db),
		Generation: service.NewGenerationService(completer, archiver, logger),
		Recipes:    service.NewRecipeService(db, service.CharacterEmbedder{}, logger),
		Limiter:    limiter,
		Logger:     logger,
	})

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
