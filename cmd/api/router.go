package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"slidedeck-backend/internal/shared/middleware"
	"slidedeck-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupSlideRoutes(v1, c)
		setupImageRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// SLIDE ROUTES
// ========================================
func setupSlideRoutes(v1 *gin.RouterGroup, c *container.Container) {
	slides := v1.Group("/slides")
	slides.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		slides.POST("", c.SlideHandler.CreateSlide)
		slides.GET("/:id", c.SlideHandler.GetSlide)
		slides.PUT("/:id", c.SlideHandler.UpdateSlide)
		slides.DELETE("/:id", c.SlideHandler.DeleteSlide)

		// Slide-scoped image collection
		slides.GET("/:id/images", c.ImageHandler.ListImages)
		slides.POST("/:id/images", c.ImageHandler.AddImage)
		slides.POST("/:id/images/reorder", c.ImageHandler.ReorderImages)
		slides.POST("/:id/images/generate", c.ImageHandler.GenerateImages)
		slides.PUT("/:id/images/:image_id/set-primary", c.ImageHandler.SetPrimaryImage)
	}
}

// ========================================
// IMAGE ROUTES
// ========================================
// Single-image mutations address the image directly, without the slide
// prefix, because the image id alone identifies the row.
func setupImageRoutes(v1 *gin.RouterGroup, c *container.Container) {
	images := v1.Group("/images")
	images.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		images.PATCH("/:id", c.ImageHandler.UpdateImage)
		images.DELETE("/:id", c.ImageHandler.DeleteImage)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.POST("/images/migrate", c.MaintenanceHandler.MigrateImages)
		admin.GET("/images/integrity", c.MaintenanceHandler.ValidateIntegrity)
		admin.POST("/images/integrity/fix", c.MaintenanceHandler.FixIntegrity)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		dbStatus := "up"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			// Cache is optional; report but stay healthy.
			cacheStatus = "down"
		}

		ctx.JSON(status, gin.H{
			"status":    dbStatus,
			"cache":     cacheStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
