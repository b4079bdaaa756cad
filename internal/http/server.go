// Package http provides the HTTP API server, its middleware and the metrics server.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	artifactHTTP "github.com/allisson/examvault/internal/artifact/http"
	"github.com/allisson/examvault/internal/config"
	"github.com/allisson/examvault/internal/metrics"
	"github.com/allisson/examvault/internal/storage"
)

// readinessTimeout bounds the storage check of the readiness endpoint.
const readinessTimeout = 2 * time.Second

// Server represents the HTTP API server.
type Server struct {
	server *http.Server
	router *gin.Engine
	store  storage.Storage
	logger *slog.Logger
}

// NewServer creates a new HTTP server. store is listed by the readiness endpoint.
func NewServer(
	store storage.Storage,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		store:  store,
		logger: logger,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// SetupRouter configures the Gin router with all routes and middleware.
// ctx bounds background goroutines owned by the router, such as rate limiter cleanup.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	artifactHandler *artifactHTTP.ArtifactHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	// Health endpoints
	router.GET("/health", s.healthHandler)
	router.GET("/api/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// limit returns the rate limiting chain for a scope, empty when rate limiting is disabled.
	limit := func(scope string, perMinute int) []gin.HandlerFunc {
		if !cfg.RateLimitEnabled {
			return nil
		}
		return []gin.HandlerFunc{RateLimitMiddleware(ctx, scope, perMinute, s.logger)}
	}

	api := router.Group("/api")
	api.Use(limit("general", cfg.RateLimitGeneralPerMin)...)
	{
		uploadLimit := limit("upload", cfg.RateLimitUploadPerMin)
		downloadLimit := limit("download", cfg.RateLimitDownloadPerMin)

		api.POST("/upload", append(uploadLimit, artifactHandler.UploadHandler)...)
		api.GET("/files", artifactHandler.ListHandler)
		api.POST("/download/:file_id", append(downloadLimit, artifactHandler.DownloadHandler)...)
		api.POST("/verify/:file_id", append(downloadLimit, artifactHandler.VerifyHandler)...)
		api.DELETE("/delete/:file_id", artifactHandler.DeleteHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must be called first.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router

	return listenAndServe(s.server, s.logger, "http server")
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports that the process is up.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"message":   "Secure Exam Distribution System is running",
	})
}

// readinessHandler reports whether the envelope storage is reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"storage": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if _, err := s.store.List(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"storage": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"storage": "ok"},
	})
}
