package main

import (
	"fmt"
	"log"

	"github.com/ecanturk/contact-relay/internal/channel"
	"github.com/ecanturk/contact-relay/internal/config"
	"github.com/ecanturk/contact-relay/internal/handler"
	"github.com/ecanturk/contact-relay/internal/infra/postgresql"
	"github.com/ecanturk/contact-relay/internal/infra/postgresql/migrations"
	infraredis "github.com/ecanturk/contact-relay/internal/infra/redis"
	"github.com/ecanturk/contact-relay/internal/observability"
	"github.com/ecanturk/contact-relay/internal/render"
	"github.com/ecanturk/contact-relay/internal/repository"
	"github.com/ecanturk/contact-relay/internal/service"
	"github.com/ecanturk/contact-relay/internal/transport"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync() //nolint:errcheck

	db, err := postgresql.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres initialization failed", zap.Error(err))
	}

	if err := migrations.Migrate(db); err != nil {
		logger.Fatal("database migrations failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("postgres underlying db init failed", zap.Error(err))
	}
	defer sqlDB.Close()

	rdb, err := infraredis.NewRedis(cfg.RedisURL)
	if err != nil {
		logger.Fatal("redis initialization failed", zap.Error(err))
	}
	defer rdb.Close()

	limiter, err := infraredis.NewContactRateLimiter(rdb, cfg.ContactRateLimitPerMin)
	if err != nil {
		logger.Fatal("rate limiter initialization failed", zap.Error(err))
	}

	submissionRepo := repository.NewGormSubmissionRepo(db)
	notificationRepo := repository.NewGormNotificationRepo(db)
	settingsRepo := repository.NewGormSettingsRepo(db)
	templateRepo := repository.NewGormTemplateRepo(db)

	emailSender, err := channel.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SendTimeout())
	if err != nil {
		logger.Fatal("smtp sender initialization failed", zap.Error(err))
	}
	pushSender, err := channel.NewFCMSender(cfg.PushGatewayURL)
	if err != nil {
		logger.Fatal("push sender initialization failed", zap.Error(err))
	}

	metrics := observability.NewMetrics()

	orchestrator, err := service.NewOrchestrator(
		notificationRepo,
		submissionRepo,
		settingsRepo,
		templateRepo,
		emailSender,
		pushSender,
		render.NewRenderer(),
		cfg.SiteName,
		cfg.SiteURL,
		cfg.SendTimeout(),
		logger,
	)
	if err != nil {
		logger.Fatal("orchestrator initialization failed", zap.Error(err))
	}
	orchestrator.SetMetrics(metrics)

	submissionService, err := service.NewSubmissionService(submissionRepo, notificationRepo, orchestrator, logger)
	if err != nil {
		logger.Fatal("submission service initialization failed", zap.Error(err))
	}
	submissionService.SetMetrics(metrics)

	settingsService, err := service.NewSettingsService(settingsRepo, logger)
	if err != nil {
		logger.Fatal("settings service initialization failed", zap.Error(err))
	}

	templateService, err := service.NewTemplateService(templateRepo, logger)
	if err != nil {
		logger.Fatal("template service initialization failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:      "contact-relay",
		ErrorHandler: transport.ErrorHandler(logger),
	})

	app.Use(requestid.New())
	app.Use(correlationMiddleware())
	app.Use(metrics.HTTPMiddleware())

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	handler.RegisterHealthRoutes(app, sqlDB, rdb)

	if err := handler.RegisterContactRoutes(app, submissionService, limiter, metrics); err != nil {
		logger.Fatal("contact routes registration failed", zap.Error(err))
	}
	if err := handler.RegisterSettingsRoutes(app, settingsService); err != nil {
		logger.Fatal("settings routes registration failed", zap.Error(err))
	}
	if err := handler.RegisterTemplateRoutes(app, templateService); err != nil {
		logger.Fatal("template routes registration failed", zap.Error(err))
	}

	logger.Info("contact-relay api started", zap.Int("port", cfg.APIPort))
	if err := app.Listen(fmt.Sprintf(":%d", cfg.APIPort)); err != nil {
		logger.Fatal("api server stopped", zap.Error(err))
	}
}

// correlationMiddleware copies the request id into the user context so
// service-layer logs carry it.
func correlationMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if requestID, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && requestID != "" {
			c.SetUserContext(observability.WithCorrelationID(c.UserContext(), requestID))
		}
		return c.Next()
	}
}
