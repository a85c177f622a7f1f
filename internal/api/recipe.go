package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-pantry/backend/internal/middleware"
	"github.com/pageza/alchemorsel-pantry/backend/internal/service"
)

type RecipeHandler struct {
	recipes     service.IRecipeService
	generation  service.IGenerationService
	inventory   service.IInventoryService
	authService service.IAuthService
	limiter     *middleware.RateLimiter
	logger      *slog.Logger
}

// NewRecipeHandler creates a RecipeHandler. limiter may be nil, in which
// case generation is not rate limited.
func NewRecipeHandler(
	recipes service.IRecipeService,
	generation service.IGenerationService,
	inventory service.IInventoryService,
	authService service.IAuthService,
	limiter *middleware.RateLimiter,
	logger *slog.Logger,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		generation:  generation,
		inventory:   inventory,
		authService: authService,
		limiter:     limiter,
		logger:      logger,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	requireAuth := middleware.AuthMiddleware(h.authService)

	generate := []gin.HandlerFunc{requireAuth}
	if h.limiter != nil {
		generate = append(generate, h.limiter.RateLimitMiddleware())
	}
	generate = append(generate, h.GenerateRecipes)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", requireAuth, h.ListRecipes)
		recipes.GET("/search", requireAuth, h.SearchRecipes)
		recipes.POST("/generate", generate...)
		recipes.GET("/generate/limit", requireAuth, h.GenerationLimit)
		recipes.GET("/:id", middleware.OptionalAuth(h.authService), h.GetRecipe)
		recipes.DELETE("/:id", requireAuth, h.DeleteRecipe)
		recipes.POST("/:id/favorite", requireAuth, h.ToggleFavorite)
	}
	router.GET("/favorites", requireAuth, h.ListFavorites)
}

// GenerateRecipes turns the caller's current inventory into saved recipe
// suggestions.
func (h *RecipeHandler) GenerateRecipes(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	ctx := c.Request.Context()

	inventory, err := h.inventory.Snapshot(ctx, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if len(inventory) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "add ingredients to your inventory before generating recipes"})
		return
	}

	generated, err := h.generation.Generate(ctx, userID, inventory)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	saved, dropped := h.recipes.SaveBatch(ctx, userID, generated)
	c.JSON(http.StatusCreated, GenerateResponse{Recipes: saved, Dropped: dropped})
}

// GenerationLimit reports how many generation rounds the caller has left in
// the current window without using one up.
func (h *RecipeHandler) GenerationLimit(c *gin.Context) {
	if h.limiter == nil {
		c.JSON(http.StatusOK, gin.H{"limited": false})
		return
	}

	userID, _ := middleware.UserID(c)
	remaining, reset, err := h.limiter.Remaining(c.Request.Context(), userID.String())
	if err != nil {
		h.logger.Error("failed to check rate limit", slog.String("user_id", userID.String()), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rate limit"})
		return
	}

	c.JSON(http.StatusOK, GenerationLimitResponse{
		Limited:   true,
		Limit:     h.limiter.Limit(),
		Remaining: remaining,
		Reset:     reset.Unix(),
		Window:    h.limiter.Window().String(),
	})
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	recipes, err := h.recipes.ListRecipes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, RecipeListResponse{Recipes: recipes})
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	recipes, err := h.recipes.SearchRecipes(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, RecipeListResponse{Recipes: recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c, "invalid recipe id")
	if !ok {
		return
	}

	var viewer *uuid.UUID
	if userID, ok := middleware.UserID(c); ok {
		viewer = &userID
	}

	r, err := h.recipes.GetRecipe(c.Request.Context(), id, viewer)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := pathID(c, "invalid recipe id")
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := pathID(c, "invalid recipe id")
	if !ok {
		return
	}

	r, err := h.recipes.ToggleFavorite(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	recipes, err := h.recipes.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, RecipeListResponse{Recipes: recipes})
}
