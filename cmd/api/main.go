package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dix-marketplace/backend/internal/config"
	"github.com/dix-marketplace/backend/internal/db"
	"github.com/dix-marketplace/backend/internal/events"
	apphttp "github.com/dix-marketplace/backend/internal/http"
	"github.com/dix-marketplace/backend/internal/http/handlers"
	"github.com/dix-marketplace/backend/internal/repositories"
	"github.com/dix-marketplace/backend/internal/services"
	"github.com/dix-marketplace/backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Persistence + events
	store := repositories.NewDocumentStore(pool)
	bus := events.NewRedisBus(rdb, log)

	// Object storage
	uploads := storage.NewClient(storage.ClientOpts{
		BaseURL:    cfg.StorageBaseURL,
		Token:      cfg.StorageToken,
		MaxRetries: cfg.StorageMaxRetries,
		RetryDelay: cfg.StorageRetryDelay,
	}, log)

	// Services
	userService := services.NewUserService(store, cfg.BCryptCost, log)
	adService := services.NewAdService(store, bus, log)
	sessionService := services.NewSessionService(adService, uploads, services.SessionOpts{
		PreviewDir:     cfg.PreviewDir,
		PreviewBaseURL: cfg.PreviewBaseURL,
		MaxFiles:       cfg.MaxGalleryImages,
		MaxFileSize:    cfg.MaxFileSizeBytes,
	}, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, cfg, log)
	wizardHandler := handlers.NewWizardHandler(sessionService, log)
	mediaHandler := handlers.NewMediaHandler(sessionService, log)
	adHandler := handlers.NewAdHandler(adService, log)
	wsHub := handlers.NewWSHub(cfg, bus, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.MaxFileSizeBytes) * (cfg.MaxGalleryImages + 1),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, authHandler, wizardHandler, mediaHandler, adHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
		sessionService.CloseAll()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
