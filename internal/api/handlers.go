package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-pantry/backend/internal/database"
	"github.com/pageza/alchemorsel-pantry/backend/internal/middleware"
	"github.com/pageza/alchemorsel-pantry/backend/internal/service"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	DB         *gorm.DB
	Auth       service.IAuthService
	Inventory  service.IInventoryService
	Generation service.IGenerationService
	Recipes    service.IRecipeService
	Limiter    *middleware.RateLimiter
	Logger     *slog.Logger
}

// HealthCheck reports whether the API and its database are reachable
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.HealthCheck(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health", HealthCheck(deps.DB))

	v1 := router.Group("/api/v1")
	NewAuthHandler(deps.Auth, deps.Logger).RegisterRoutes(v1)
	NewInventoryHandler(deps.Inventory, deps.Auth, deps.Logger).RegisterRoutes(v1)
	NewRecipeHandler(deps.Recipes, deps.Generation, deps.Inventory, deps.Auth, deps.Limiter, deps.Logger).RegisterRoutes(v1)
}
