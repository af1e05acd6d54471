package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/comfy-credits/backend/internal/core/ports/services"
	"github.com/comfy-credits/backend/internal/middleware"
	"github.com/comfy-credits/backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services.User)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerCreditsRoutes(v1, services.Credit)
	registerWorkflowRoutes(v1, services.Workflow)

	// Admin routes additionally require the ADMIN role
	admin := v1.Group("/admin", middleware.RequireAdmin(services.User))
	registerAdminUserRoutes(admin, services.User)
	registerAdminCreditsRoutes(admin, services.Credit)
	registerAdminWorkflowRoutes(admin, services.Workflow)
}
