package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-catalog-api/internal/config"
	"github.com/portfolio-catalog-api/internal/models"
	"github.com/portfolio-catalog-api/internal/service"
	"github.com/rs/zerolog"
)

const serviceName = "portfolio-catalog-api"

// Pinger reports whether the backing database is reachable
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, db Pinger, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(recoveryMiddleware(log, cfg.IsDevelopment()))
	router.Use(corsMiddleware(cfg.API.AllowedOrigin))
	router.Use(bodyLimitMiddleware(cfg.API.MaxBodyBytes))

	// Handlers
	projectHandler := NewProjectHandler(services, cfg, log)
	exportHandler := NewExportHandler(services, log)

	// Health check
	router.GET("/health", healthCheck(db, log))
	router.GET("/metrics", metricsHandler(services, log))

	projects := router.Group("/api/projects")
	{
		projects.GET("", projectHandler.ListProjects)
		projects.POST("", projectHandler.CreateProject)
		projects.GET("/category/:category", projectHandler.ListProjectsByCategory)
		projects.GET("/export", exportHandler.StreamExport)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})

	return router
}

// healthCheck returns the health status
func healthCheck(db Pinger, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			log.Warn().Err(err).Msg("Database health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now().Format(time.RFC3339),
				"service":   serviceName,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   serviceName,
		})
	}
}

// metricsHandler returns catalog counts per category
func metricsHandler(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		total, err := services.Catalog.Count(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("Failed to count projects")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count projects", "details": err.Error()})
			return
		}
		counts, err := services.Catalog.CountByCategory(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("Failed to count projects")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count projects", "details": err.Error()})
			return
		}

		byCategory := make(gin.H, len(models.Categories))
		for _, category := range models.Categories {
			byCategory[string(category)] = 0
		}
		for category, n := range counts {
			byCategory[category] = n
		}

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"total":       total,
				"by_category": byCategory,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}
