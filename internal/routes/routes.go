// Package routes defines HTTP routes for the auth service.
package routes

import (
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/handlers"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/metrics"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/middleware"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/service"
	"github.com/gin-gonic/gin"
)

// Setup configures all HTTP routes for the application. The returned group
// is mounted at /api and requires a resolved identity; other features attach
// their routes to it.
func Setup(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	resolver service.IdentityResolver,
	metricsCollector *metrics.Metrics,
) *gin.RouterGroup {
	// Health check
	router.GET("/health", healthHandler.Check)
	// Metrics
	router.GET("/metrics", gin.WrapH(metricsCollector.Handler()))

	requireIdentity := middleware.RequireIdentity(resolver)

	api := router.Group("/api")
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/token", authHandler.Token)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", requireIdentity, authHandler.Me)
		auth.POST("/logout", requireIdentity, authHandler.Logout)
	}

	return api.Group("", requireIdentity)
}
