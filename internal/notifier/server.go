package notifier

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Server is the notifier's HTTP surface.
type Server struct {
	service *Service
	router  *gin.Engine
	httpSrv *http.Server
}

// NewServer creates the notifier HTTP server.
func NewServer(service *Service, address string) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		service: service,
		router:  router,
		httpSrv: &http.Server{
			Addr:         address,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.POST("/notifications", s.createNotification)
	s.router.GET("/notifications/:orgID", s.listNotifications)
}

type createNotificationRequest struct {
	OrgID   string `json:"org_id"`
	Message string `json:"message"`
}

func (s *Server) createNotification(c *gin.Context) {
	var req createNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	n, err := s.service.CreateNotification(c.Request.Context(), req.OrgID, req.Message)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Str("org_id", req.OrgID).Msg("Failed to store notification")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store notification"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": n.ID.String()})
}

func (s *Server) listNotifications(c *gin.Context) {
	notifications, err := s.service.ListNotifications(c.Request.Context(), c.Param("orgID"))
	if err != nil {
		if errors.Is(err, ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("Failed to list notifications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	log.Info().Str("address", s.httpSrv.Addr).Msg("Starting notifier server")
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "notifier server failed")
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down notifier server")
	return s.httpSrv.Shutdown(ctx)
}
