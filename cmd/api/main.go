package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/trackassure/compliance-api/internal/application/auth"
	"github.com/trackassure/compliance-api/internal/application/session"
	"github.com/trackassure/compliance-api/internal/application/usecase"
	"github.com/trackassure/compliance-api/internal/domain/entity"
	"github.com/trackassure/compliance-api/internal/infrastructure/backends"
	"github.com/trackassure/compliance-api/internal/infrastructure/postgres"
	httpRouter "github.com/trackassure/compliance-api/internal/interfaces/http"
	"github.com/trackassure/compliance-api/pkg/config"
	"github.com/trackassure/compliance-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	// Credential store + session lifecycle
	kv := postgres.NewKVStore(pool)
	sessions := session.NewManager(kv, log)

	// One provider per role backend, in fixed priority order.
	attemptTimeout := time.Duration(cfg.Backends.AttemptTimeoutMS) * time.Millisecond
	authenticator := auth.NewAuthenticator(sessions, log,
		backends.NewClient(entity.RoleSuperAdmin, cfg.Backends.SuperAdminURL, attemptTimeout, log),
		backends.NewClient(entity.RoleManufacturer, cfg.Backends.ManufacturerURL, attemptTimeout, log),
		backends.NewClient(entity.RoleDistributor, cfg.Backends.DistributorURL, attemptTimeout, log),
		backends.NewClient(entity.RoleRFC, cfg.Backends.RFCURL, attemptTimeout, log),
	)

	deviceUC := usecase.NewDeviceUseCase(postgres.NewDeviceRepository(pool))
	planUC := usecase.NewPlanUseCase(postgres.NewPlanRepository(pool))
	operatorUC := usecase.NewOperatorUseCase(postgres.NewOperatorRepository(pool))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TrackAssure Compliance API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Authenticator: authenticator,
		Sessions:      sessions,
		DeviceUC:      deviceUC,
		PlanUC:        planUC,
		OperatorUC:    operatorUC,
		JWT: httpRouter.JWTSettings{
			Secret:     cfg.JWT.Secret,
			Issuer:     cfg.JWT.Issuer,
			ExpMinutes: cfg.JWT.Expiration,
		},
		LoginPerMin: cfg.Rate.LoginPerMinute,
		LoginBurst:  cfg.Rate.LoginBurst,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
