package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/edutrack/studentbook/internal/config"
	"github.com/edutrack/studentbook/internal/handler"
	"github.com/edutrack/studentbook/internal/middleware"
	"github.com/edutrack/studentbook/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Student *handler.StudentHandler
}

// SetupRouter configures the Gin engine, global middlewares and the
// /students route group.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Request metrics for every route, scraped via /metrics.
	router.Use(middleware.Metrics())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", middleware.MetricsHandler())

	// Rate limiter for mutating routes (WriteRPM requests per minute per IP).
	writeLimiter := middleware.NewRateLimiter(cfg.WriteRPM, time.Minute)

	// ─── Students Group ────────────────────────────────────────────────
	students := router.Group("/students")
	{
		students.GET("", handlers.Student.ListStudents)
		students.POST("", writeLimiter.Middleware(), handlers.Student.CreateStudent)
		students.GET("/by-address", handlers.Student.ListStudentsByAddress)
		students.GET("/between-age", handlers.Student.ListStudentsBetweenAge)
		students.GET("/name-address-age", handlers.Student.ListStudentSummaries)
		students.GET("/export", handlers.Student.ExportStudents)
		students.GET("/:id", handlers.Student.GetStudent)
		students.PUT("/:id/email", writeLimiter.Middleware(), handlers.Student.UpdateStudentEmail)
		students.PUT("/:id/address", writeLimiter.Middleware(), handlers.Student.UpdateStudentAddress)
	}

	return router
}
