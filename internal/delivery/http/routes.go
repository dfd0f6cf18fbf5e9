package http

import (
	"github.com/gin-gonic/gin"
	"github.com/tdpro/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(handler.logger))
	router.Use(RequestIDMiddleware())
	router.Use(MetricsMiddleware(handler.metrics))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check and scrape endpoints
	router.GET("/health", handler.HealthCheck)
	if handler.metrics != nil {
		router.GET("/metrics", gin.WrapH(handler.metrics.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(SessionMiddleware())
	v1.Use(LoggerMiddleware(handler.logger))
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	{
		v1.GET("/catalog", handler.ListCatalog)

		cart := v1.Group("/cart")
		{
			cart.GET("", handler.GetCart)
			cart.DELETE("", handler.ClearCart)
			cart.POST("/items", handler.AddItem)
			cart.POST("/products/:id", handler.AddProduct)
		}

		v1.GET("/recommendations", handler.CartRecommendations)
		v1.GET("/recommendations/:id", handler.ProductRecommendations)

		v1.GET("/region", handler.GetRegion)
		v1.PUT("/region", handler.SetRegion)
		v1.GET("/field-distance", handler.GetFieldDistance)
		v1.PUT("/field-distance", handler.SetFieldDistance)
		v1.GET("/supplies/suggestion", handler.SuppliesSuggestion)

		v1.POST("/checkout", handler.Checkout)

		if handler.events != nil {
			v1.GET("/events", handler.Events)
		}
	}

	return router
}
