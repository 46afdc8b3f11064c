package server

import (
	"log/slog"
	"os"

	"github.com/alkime/slideswitch/internal/config"
	"github.com/gin-contrib/secure"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// setupSecurityMiddleware configures and applies security middleware to the router
func setupSecurityMiddleware(router *gin.Engine, cfg *config.Config, logger *slog.Logger) {
	// Configure HSTS for production only
	stsSeconds := int64(0)
	if cfg.Env == config.EnvProduction {
		stsSeconds = int64(cfg.HSTSMaxAge)
	}

	secureMiddleware := secure.New(secure.Config{
		STSSeconds:            stsSeconds,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: config.BuildCSP(cfg.CSPMode),
	})
	router.Use(secureMiddleware)

	logger.Debug("Configured security middleware",
		"hsts_enabled", cfg.Env == config.EnvProduction,
		"csp_mode", cfg.CSPMode,
	)
}

// setupStatic serves optional assets (e.g. a demo page) from the public dir.
func setupStatic(router *gin.Engine, cfg *config.Config, logger *slog.Logger) {
	if cfg.PublicDir == "" {
		return
	}

	if info, err := os.Stat(cfg.PublicDir); err != nil || !info.IsDir() {
		logger.Debug("No public directory, static assets disabled", "dir", cfg.PublicDir)
		return
	}

	router.Use(static.Serve("/", static.LocalFile(cfg.PublicDir, false)))
	logger.Debug("Serving static assets", "dir", cfg.PublicDir)
}
