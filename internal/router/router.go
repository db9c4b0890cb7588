package router

import (
	"github.com/gin-gonic/gin"
	"github.com/imyashkale/kubegate/internal/handlers"
	"github.com/imyashkale/kubegate/internal/middleware"
	"github.com/imyashkale/kubegate/internal/services"
)

// Setup configures and returns the application router
func Setup(
	auth *services.AuthService,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	resourceHandler *handlers.ResourceHandler,
	userHandler *handlers.UserHandler,
) *gin.Engine {

	// Create a new Gin router
	router := gin.Default()

	// Apply CORS middleware globally
	router.Use(middleware.CORS())

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Health check and login are reachable without a token
	v1.GET("/health", healthHandler.Check)
	v1.POST("/auth/token", authHandler.Login)

	// Everything else requires an authenticated, active user
	authed := v1.Group("")
	authed.Use(middleware.Authentication(auth))

	// Current user
	user := authed.Group("/user")
	{
		user.GET("/me", userHandler.Me)
		user.GET("/resources", resourceHandler.ListMine)
		user.GET("/resources/:resource_id", resourceHandler.GetMine)
	}

	// Resource lifecycle
	resources := authed.Group("/resources")
	{
		resources.POST("", resourceHandler.Create)
		resources.DELETE("/:resource_type/:resource_name", resourceHandler.Delete)
		resources.POST("/:resource_type/:resource_name", resourceHandler.Touch)
	}

	// Admin-only views and user management
	admin := authed.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/resources", resourceHandler.ListCluster)
		admin.GET("/resources/deployments", resourceHandler.ListClusterDeployments)
		admin.GET("/resources/services", resourceHandler.ListClusterServices)

		admin.GET("/db/resources", resourceHandler.ListLedger)
		admin.GET("/db/users", userHandler.List)
		admin.POST("/db/users", userHandler.Create)
		admin.GET("/db/user/:user_id", userHandler.Get)
		admin.DELETE("/db/user/:user_id", userHandler.Delete)
	}

	return router
}
