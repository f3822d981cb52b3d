package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/knowledge"
	"github.com/ctd-ild-mcp-server/internal/middleware"
	"github.com/ctd-ild-mcp-server/internal/narrative"
)

// Server represents the HTTP server
type Server struct {
	configManager domain.ConfigManager
	advisor       domain.Advisor
	kb            *knowledge.Base
	dispatcher    *narrative.Dispatcher
	logger        *logrus.Logger
	router        *gin.Engine
	server        *http.Server
}

// NewServer creates a new HTTP server instance. A nil dispatcher disables the narrative route.
func NewServer(
	configManager domain.ConfigManager,
	advisor domain.Advisor,
	kb *knowledge.Base,
	dispatcher *narrative.Dispatcher,
	logger *logrus.Logger,
) *Server {
	cfg := configManager.GetConfig()

	if configManager.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	}

	if kb == nil {
		kb = knowledge.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.RequestTimeout(cfg.Server.RequestTimeout))

	server := &Server{
		configManager: configManager,
		advisor:       advisor,
		kb:            kb,
		dispatcher:    dispatcher,
		logger:        logger,
		router:        router,
	}

	server.setupRoutes()

	return server
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if s.dispatcher != nil {
		s.dispatcher.Wait()
	}
	return nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/evaluate", s.handleEvaluate)
		v1.POST("/risk", s.handleRisk)
		v1.POST("/prognosis", s.handlePrognosis)
		v1.POST("/screening", s.handleScreening)
		v1.POST("/monitoring", s.handleMonitoring)
		v1.POST("/treatment", s.handleTreatment)
		v1.POST("/contraindications", s.handleContraindications)
		v1.POST("/nintedanib", s.handleNintedanib)

		v1.POST("/narrative/prompt", s.handleNarrativePrompt)
		v1.POST("/narrative", s.handleNarrative)

		v1.GET("/treatments", s.handleListTreatments)
		v1.GET("/treatments/:key", s.handleGetTreatment)
		v1.GET("/disease-types", s.handleDiseaseTypes)
		v1.GET("/options", s.handleOptions)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   s.configManager.GetConfig().MCP.ServerVersion,
	})
}

// respondError writes the APIError envelope.
func (s *Server) respondError(c *gin.Context, status int, code, message, details string) {
	c.AbortWithStatusJSON(status, domain.NewAPIError(code, message, details, c.GetString(middleware.CorrelationIDKey)))
}
