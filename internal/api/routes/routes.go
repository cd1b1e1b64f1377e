// Package routes defines the HTTP routes for the LLM gateway.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/synapse-ai/llm-gateway/internal/api/handlers"
	"github.com/synapse-ai/llm-gateway/internal/api/middleware"
)

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler      *handlers.HealthHandler
	CompletionsHandler *handlers.CompletionsHandler
	ContextsHandler    *handlers.ContextsHandler
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	v1 := r.Group("/api/v1")
	{
		// Health check routes
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		// --- Completion Routes ---
		llm := v1.Group("/llm")
		{
			llm.POST("/completions", cfg.CompletionsHandler.CreateCompletion)
			llm.GET("/costs", cfg.CompletionsHandler.GetCostStats)
		}

		// --- Conversation Context Routes ---
		agents := v1.Group("/agents/:agentId")
		{
			contexts := agents.Group("/contexts")
			{
				contexts.GET("", cfg.ContextsHandler.ListContexts)
				contexts.DELETE("", cfg.ContextsHandler.ClearContexts)

				contexts.GET("/:contextId", cfg.ContextsHandler.GetContext)
				contexts.PUT("/:contextId", cfg.ContextsHandler.SaveContext)
				contexts.DELETE("/:contextId", cfg.ContextsHandler.DeleteContext)

				contexts.POST("/:contextId/ttl", cfg.ContextsHandler.ExtendTTL)
			}
		}
	}
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware) {
	// Apply global middleware
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())
	r.Use(gin.Recovery())

	// Setup routes
	Setup(r, cfg)

	r.NoRoute(middleware.NotFound())
	r.NoMethod(middleware.MethodNotAllowed())
}
