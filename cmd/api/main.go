package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/sawaid25/aixosfire-api/internal/application/analytics"
	"github.com/sawaid25/aixosfire-api/internal/application/auth"
	"github.com/sawaid25/aixosfire-api/internal/application/booking"
	"github.com/sawaid25/aixosfire-api/internal/application/certificate"
	"github.com/sawaid25/aixosfire-api/internal/application/tracking"
	"github.com/sawaid25/aixosfire-api/internal/application/usecase"
	"github.com/sawaid25/aixosfire-api/internal/application/visit"
	inframedia "github.com/sawaid25/aixosfire-api/internal/infrastructure/media"
	infrapdf "github.com/sawaid25/aixosfire-api/internal/infrastructure/pdf"
	"github.com/sawaid25/aixosfire-api/internal/infrastructure/postgres"
	infraredis "github.com/sawaid25/aixosfire-api/internal/infrastructure/redis"
	httpRouter "github.com/sawaid25/aixosfire-api/internal/interfaces/http"
	"github.com/sawaid25/aixosfire-api/pkg/config"
	"github.com/sawaid25/aixosfire-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	redisClient, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	mediaStore, err := inframedia.NewDiskStore(cfg.Media)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de adjuntos")
	}

	// Repositorios
	adminRepo := postgres.NewAdminRepository(pool)
	agentRepo := postgres.NewAgentRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	visitRepo := postgres.NewVisitRepository(pool)
	extinguisherRepo := postgres.NewExtinguisherRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Adaptadores efímeros sobre Redis
	draftStore := infraredis.NewDraftStore(redisClient)
	submitLock := infraredis.NewSubmitLock(redisClient)
	throttle := infraredis.NewThrottle(redisClient)
	positionCache := infraredis.NewPositionCache(redisClient)

	// Casos de uso
	authUC := auth.NewAuthUseCase(adminRepo, agentRepo, customerRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	wizardUC := visit.NewWizardUseCase(draftStore, customerRepo, log)
	submitUC := visit.NewSubmitUseCase(draftStore, submitLock, customerRepo, visitRepo, extinguisherRepo, log)
	customerUC := usecase.NewCustomerUseCase(customerRepo, visitRepo, extinguisherRepo, log)
	agentUC := usecase.NewAgentUseCase(agentRepo, visitRepo, log)
	bookingUC := booking.NewBookingUseCase(serviceRepo, agentRepo, extinguisherRepo, txRunner, log)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, positionCache, log)
	trackingUC := tracking.NewTrackingUseCase(throttle, positionCache, agentRepo, customerRepo, log)

	pdfGenerator := infrapdf.NewMarotoCertificateGenerator()
	certificateUC := certificate.NewCertificateUseCase(customerRepo, extinguisherRepo, visitRepo, pdfGenerator, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AixosFire API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		WizardUC:      wizardUC,
		SubmitUC:      submitUC,
		MediaStore:    mediaStore,
		CustomerUC:    customerUC,
		AgentUC:       agentUC,
		BookingUC:     bookingUC,
		DashboardUC:   dashboardUC,
		TrackingUC:    trackingUC,
		CertificateUC: certificateUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
