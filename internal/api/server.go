// Package api wires the HTTP surface of the main backend: routing,
// middleware, and graceful shutdown.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/volunteerhub/config"
	"example.com/volunteerhub/internal/api/handlers"
	"example.com/volunteerhub/internal/api/middleware"
	"example.com/volunteerhub/internal/auth"
	"example.com/volunteerhub/internal/metrics"
	"example.com/volunteerhub/internal/services"
)

// Server is the main backend HTTP server.
type Server struct {
	router  *gin.Engine
	httpSrv *http.Server
}

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Users         *services.UserService
	Organizations *services.OrganizationService
	Events        *services.EventService
	Registrations *services.RegistrationService
	Proximity     *services.ProximityService
	JWT           *auth.JWTManager
	Metrics       *metrics.Metrics
}

// NewServer creates the API server and registers all routes.
func NewServer(cfg config.Config, deps Services) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	s := &Server{
		router: router,
		httpSrv: &http.Server{
			Addr:         cfg.ServerAddress,
			Handler:      router,
			ReadTimeout:  cfg.ServerTimeout,
			WriteTimeout: cfg.ServerTimeout,
		},
	}
	s.registerRoutes(deps)
	return s
}

func (s *Server) registerRoutes(deps Services) {
	userHandler := handlers.NewUserHandler(deps.Users)
	orgHandler := handlers.NewOrganizationHandler(deps.Organizations)
	volunteeringHandler := handlers.NewVolunteeringHandler(deps.Events, deps.Registrations, deps.Proximity)
	metricsHandler := handlers.NewMetricsHandler(deps.Metrics)

	authRequired := middleware.JWTAuth(deps.JWT)

	s.router.GET("/health", handlers.Health)
	s.router.GET("/metrics", metricsHandler.Get)

	users := s.router.Group("/users")
	{
		users.POST("/signup", userHandler.Signup)
		users.POST("/login", userHandler.Login)
		users.GET("/get_user_by_id/:id", authRequired, userHandler.GetByID)
		users.PUT("/update_profile", authRequired, middleware.RequireRole(auth.RoleVolunteer), userHandler.UpdateProfile)
		users.DELETE("/delete_account", authRequired, middleware.RequireRole(auth.RoleVolunteer), userHandler.DeleteAccount)
		users.GET("/get_my_events", authRequired, middleware.RequireRole(auth.RoleVolunteer), userHandler.MyEvents)
	}

	orgs := s.router.Group("/organizations")
	{
		orgs.POST("/signup", orgHandler.Signup)
		orgs.POST("/login", orgHandler.Login)
		orgs.GET("/my_events", authRequired, middleware.RequireRole(auth.RoleOrganization), orgHandler.MyEvents)
		orgs.GET("/:id", authRequired, orgHandler.GetByID)
	}

	volunteering := s.router.Group("/volunteering", authRequired)
	{
		volunteering.GET("/events", volunteeringHandler.ListEvents)
		volunteering.GET("/events/search", volunteeringHandler.SearchEvents)
		volunteering.GET("/events/:id", volunteeringHandler.GetEvent)
		volunteering.POST("/create-event", middleware.RequireRole(auth.RoleOrganization), volunteeringHandler.CreateEvent)
		volunteering.POST("/register-for-event/:eventId/register", middleware.RequireRole(auth.RoleVolunteer), volunteeringHandler.RegisterForEvent)
		volunteering.GET("/nearest-events", volunteeringHandler.NearestEvents)
	}
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	log.Info().Str("address", s.httpSrv.Addr).Msg("Starting API server")
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "API server failed")
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down API server")
	return s.httpSrv.Shutdown(ctx)
}
