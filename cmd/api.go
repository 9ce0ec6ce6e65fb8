package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"example.com/volunteerhub/internal/api"
	"example.com/volunteerhub/internal/auth"
	"example.com/volunteerhub/internal/cache"
	"example.com/volunteerhub/internal/database"
	"example.com/volunteerhub/internal/metrics"
	"example.com/volunteerhub/internal/models"
	"example.com/volunteerhub/internal/notification"
	"example.com/volunteerhub/internal/repositories"
	"example.com/volunteerhub/internal/search"
	"example.com/volunteerhub/internal/services"
	"example.com/volunteerhub/internal/tracing"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run the main backend API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI()
	},
}

func init() {
	rootCmd.AddCommand(apiCmd)
}

func runAPI() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DB)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := models.SetupModels(db); err != nil {
		return err
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
		redisCache = cache.Disabled()
	}
	defer redisCache.Close()

	elastic, err := search.NewElasticClient(cfg.Elastic)
	if err != nil {
		return err
	}

	tracer, err := tracing.NewTracer(cfg.Tracing)
	if err != nil {
		return err
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry, cfg.Auth.Issuer)
	metricsCollector := metrics.NewMetrics()
	notifyClient := notification.NewClient(cfg.Notification)

	userRepo := repositories.NewUserRepository(db)
	orgRepo := repositories.NewOrganizationRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	registrationRepo := repositories.NewRegistrationRepository(db)

	eventSvc := services.NewEventService(eventRepo, orgRepo, redisCache, elastic, metricsCollector)

	server := api.NewServer(cfg, api.Services{
		Users:         services.NewUserService(userRepo, jwtManager),
		Organizations: services.NewOrganizationService(orgRepo, jwtManager),
		Events:        eventSvc,
		Registrations: services.NewRegistrationService(eventRepo, registrationRepo, userRepo, notifyClient, metricsCollector, tracer),
		Proximity:     services.NewProximityService(eventSvc, metricsCollector),
		JWT:           jwtManager,
		Metrics:       metricsCollector,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
