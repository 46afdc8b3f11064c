package server

import (
	"log/slog"
	"net/http"

	"github.com/alkime/slideswitch/internal/config"
	"github.com/alkime/slideswitch/internal/owner"
	"github.com/gin-gonic/gin"
)

// Server exposes a slide switch over HTTP.
type Server struct {
	config *config.Config
	logger *slog.Logger
	router *gin.Engine
	loop   *owner.Loop
}

// New creates a new Server instance driving the switch owned by loop.
func New(cfg *config.Config, logger *slog.Logger, loop *owner.Loop) *Server {
	// Set Gin mode based on environment
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	server := &Server{
		config: cfg,
		logger: logger,
		router: router,
		loop:   loop,
	}

	setupSecurityMiddleware(router, cfg, logger)
	setupStatic(router, cfg, logger)
	server.setupRoutes()

	return server
}

// Router returns the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1/switch")
	{
		api.GET("", s.handleGetSwitch)
		api.GET("/frame", s.handleGetFrame)
		api.PUT("/state", s.handleSetState)
		api.POST("/pointer", s.handlePointer)
		api.PUT("/layout", s.handleLayout)
		api.PUT("/shape", s.handleShape)
		api.PUT("/slideable", s.handleSlideable)
	}
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "slideswitch",
	})
}

// requestLogger logs each request through slog instead of gin's text logger.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}
