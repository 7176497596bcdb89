package http

import (
	"time"

	"github.com/dix-marketplace/backend/internal/config"
	"github.com/dix-marketplace/backend/internal/http/handlers"
	"github.com/dix-marketplace/backend/internal/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	wizardHandler *handlers.WizardHandler,
	mediaHandler *handlers.MediaHandler,
	adHandler *handlers.AdHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Local preview files for drafts in progress
	app.Static("/previews", cfg.PreviewDir)

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	// Rate-limited endpoints
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Meta (public, no auth required)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/cities", metaHandler.GetCities)
	api.Get("/meta/packages", metaHandler.GetPackages)
	api.Get("/meta/attributes", metaHandler.GetAttributes)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Wizard sessions
	protected.Post("/wizard/sessions", wizardHandler.OpenSession)
	protected.Get("/wizard/sessions/:id", wizardHandler.GetSession)
	protected.Delete("/wizard/sessions/:id", wizardHandler.CloseSession)
	protected.Post("/wizard/sessions/:id/steps/:step", wizardHandler.SubmitStep)
	protected.Post("/wizard/sessions/:id/back", wizardHandler.PreviousStep)
	protected.Post("/wizard/sessions/:id/goto/:step", wizardHandler.GoToStep)

	// Draft media
	protected.Get("/wizard/sessions/:id/media", mediaHandler.GetMedia)
	protected.Post("/wizard/sessions/:id/media", mediaHandler.UploadGallery)
	protected.Post("/wizard/sessions/:id/media/:imageId/primary", mediaHandler.SetPrimary)
	protected.Delete("/wizard/sessions/:id/media/:imageId", mediaHandler.RemoveImage)
	protected.Post("/wizard/sessions/:id/verification/:role", mediaHandler.UploadVerification)

	// Ads
	protected.Get("/ads", adHandler.ListMyAds)
	protected.Get("/ads/:id", adHandler.GetAd)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
