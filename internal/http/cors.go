package http

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// corsPreflightMaxAge bounds how long browsers cache a preflight answer.
const corsPreflightMaxAge = 12 * time.Hour

// createCORSMiddleware builds the CORS middleware for the browser upload front end from
// CORS_ALLOW_ORIGINS, a comma-separated origin list. A "*" entry allows every origin and
// turns credentials off. Returns nil when CORS is disabled or no origin survives parsing.
func createCORSMiddleware(enabled bool, allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOrigins)
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no origins configured, CORS will not be applied")
		return nil
	}

	config := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE"},
		AllowHeaders: []string{"Content-Type"},
		// Browsers need Content-Disposition to name the downloaded paper.
		ExposeHeaders: []string{"X-Request-Id", "Content-Disposition", "Retry-After"},
		MaxAge:        corsPreflightMaxAge,
	}
	if slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))

	return cors.New(config)
}

// parseOrigins splits a comma-separated origin list, dropping blanks.
func parseOrigins(s string) []string {
	var origins []string
	for part := range strings.SplitSeq(s, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
