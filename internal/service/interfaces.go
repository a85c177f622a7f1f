package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-pantry/backend/internal/middleware"
	"github.com/pageza/alchemorsel-pantry/backend/internal/models"
	"github.com/pageza/alchemorsel-pantry/backend/internal/recipe"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*middleware.TokenClaims, error)
}

// IInventoryService defines the interface for kitchen inventory operations
type IInventoryService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.InventoryItem, error)
	Create(ctx context.Context, userID uuid.UUID, in InventoryInput) (*models.InventoryItem, error)
	Update(ctx context.Context, userID, id uuid.UUID, in InventoryInput) (*models.InventoryItem, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Snapshot(ctx context.Context, userID uuid.UUID) ([]recipe.InventoryEntry, error)
}

// IGenerationService defines the interface for recipe generation
type IGenerationService interface {
	Generate(ctx context.Context, userID uuid.UUID, inventory []recipe.InventoryEntry) ([]recipe.Recipe, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	SaveBatch(ctx context.Context, userID uuid.UUID, candidates []recipe.Recipe) ([]recipe.Recipe, int)
	GetRecipe(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (recipe.Recipe, error)
	ListRecipes(ctx context.Context, userID uuid.UUID) ([]recipe.Recipe, error)
	SearchRecipes(ctx context.Context, userID uuid.UUID, query string) ([]recipe.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error
	ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID) (recipe.Recipe, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]recipe.Recipe, error)
}

var (
	_ IAuthService       = (*AuthService)(nil)
	_ IInventoryService  = (*InventoryService)(nil)
	_ IGenerationService = (*GenerationService)(nil)
	_ IRecipeService     = (*RecipeService)(nil)
)
