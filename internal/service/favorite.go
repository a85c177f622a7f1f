package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/alchemorsel-pantry/backend/internal/models"
	"github.com/pageza/alchemorsel-pantry/backend/internal/recipe"
)

// ToggleFavorite flips the favorite state of one of the user's recipes and
// returns the recipe with its new IsFavorite. Concurrent toggles of the same
// pair are last-write-wins; the primary key keeps at most one row.
func (s *RecipeService) ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID) (recipe.Recipe, error) {
	var (
		record    models.Recipe
		favorited bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, "id = ? AND user_id = ?", recipeID, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return recipe.ErrRecipeNotFound
			}
			return err
		}

		result := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.RecipeFavorite{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			favorited = false
			return nil
		}

		favorited = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.RecipeFavorite{UserID: userID, RecipeID: recipeID}).Error
	})
	if err != nil {
		return recipe.Recipe{}, err
	}

	r, err := recipe.FromRecord(&record)
	if err != nil {
		return recipe.Recipe{}, err
	}
	r.IsFavorite = favorited
	s.logger.Info("favorite toggled",
		slog.String("user_id", userID.String()),
		slog.String("recipe_id", recipeID.String()),
		slog.Bool("favorite", favorited),
	)
	return r, nil
}

// ListFavorites returns every recipe the user has favorited. No order is promised.
func (s *RecipeService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]recipe.Recipe, error) {
	var records []models.Recipe
	if err := s.db.WithContext(ctx).
		Joins("JOIN recipe_favorites ON recipe_favorites.recipe_id = recipes.id").
		Where("recipe_favorites.user_id = ?", userID).
		Find(&records).Error; err != nil {
		return nil, err
	}

	result := make([]recipe.Recipe, 0, len(records))
	for i := range records {
		r, err := recipe.FromRecord(&records[i])
		if err != nil {
			s.logger.Warn("skipping corrupt favorite", slog.String("recipe_id", records[i].ID.String()), slog.Any("error", err))
			continue
		}
		r.IsFavorite = true
		result = append(result, r)
	}
	return result, nil
}

func (s *RecipeService) isFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.RecipeFavorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (s *RecipeService) favoriteIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.RecipeFavorite{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
