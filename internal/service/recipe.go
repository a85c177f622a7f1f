package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/alchemorsel-pantry/backend/internal/models"
	"github.com/pageza/alchemorsel-pantry/backend/internal/recipe"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db       *gorm.DB
	embedder EmbeddingServiceInterface
	logger   *slog.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, embedder EmbeddingServiceInterface, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		db:       db,
		embedder: embedder,
		logger:   logger,
	}
}

// SaveBatch stores each generated recipe on its own. A recipe that fails to
// save is logged and left out; the rest are returned in input order along
// with the number that were dropped.
func (s *RecipeService) SaveBatch(ctx context.Context, userID uuid.UUID, candidates []recipe.Recipe) ([]recipe.Recipe, int) {
	saved := make([]recipe.Recipe, 0, len(candidates))
	dropped := 0
	for i, candidate := range candidates {
		r, err := s.save(ctx, userID, candidate)
		if err != nil {
			dropped++
			s.logger.Error("failed to save generated recipe",
				slog.String("user_id", userID.String()),
				slog.Int("index", i),
				slog.String("title", candidate.Title),
				slog.Any("error", err),
			)
			continue
		}
		saved = append(saved, r)
	}
	if dropped > 0 {
		s.logger.Warn("generation batch partially saved",
			slog.String("user_id", userID.String()),
			slog.Int("saved", len(saved)),
			slog.Int("dropped", dropped),
		)
	}
	return saved, dropped
}

func (s *RecipeService) save(ctx context.Context, userID uuid.UUID, candidate recipe.Recipe) (recipe.Recipe, error) {
	record, err := recipe.ToRecord(candidate, userID)
	if err != nil {
		return recipe.Recipe{}, err
	}
	if s.embedder != nil {
		vec, err := s.embedder.GenerateEmbedding(embeddingText(candidate))
		if err != nil {
			s.logger.Warn("failed to embed recipe", slog.String("title", candidate.Title), slog.Any("error", err))
		} else {
			record.Embedding = &vec
		}
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return recipe.Recipe{}, err
	}
	return recipe.FromRecord(record)
}

// GetRecipe retrieves a recipe by ID. With a viewer, IsFavorite reflects
// whether that user has favorited it; without one it stays false.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (recipe.Recipe, error) {
	var record models.Recipe
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return recipe.Recipe{}, recipe.ErrRecipeNotFound
		}
		return recipe.Recipe{}, err
	}

	r, err := recipe.FromRecord(&record)
	if err != nil {
		return recipe.Recipe{}, err
	}
	if viewer != nil {
		r.IsFavorite, err = s.isFavorite(ctx, *viewer, id)
		if err != nil {
			return recipe.Recipe{}, err
		}
	}
	return r, nil
}

// ListRecipes lists a user's recipes, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]recipe.Recipe, error) {
	var records []models.Recipe
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return s.annotate(ctx, userID, records)
}

// likeEscaper makes LIKE wildcards in a search query match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SearchRecipes matches a user's recipes against title, description and
// ingredients. On postgres the matches are ranked by embedding distance.
func (s *RecipeService) SearchRecipes(ctx context.Context, userID uuid.UUID, query string) ([]recipe.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListRecipes(ctx, userID)
	}

	like := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	dbQuery := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(ingredients) LIKE ? ESCAPE '\'`, like, like, like)

	if s.db.Dialector.Name() == "postgres" && s.embedder != nil {
		vec, err := s.embedder.GenerateEmbedding(query)
		if err != nil {
			return nil, err
		}
		dbQuery = dbQuery.Order(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
		})
	} else {
		dbQuery = dbQuery.Order("created_at DESC")
	}

	var records []models.Recipe
	if err := dbQuery.Find(&records).Error; err != nil {
		return nil, err
	}
	return s.annotate(ctx, userID, records)
}

// DeleteRecipe removes a user's recipe and every favorite pointing at it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.Recipe
		if err := tx.Select("id").First(&record, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return recipe.ErrRecipeNotFound
			}
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeFavorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

// annotate decodes records for a viewer. Corrupt records are logged and
// skipped so one bad row does not hide the rest of the list.
func (s *RecipeService) annotate(ctx context.Context, viewer uuid.UUID, records []models.Recipe) ([]recipe.Recipe, error) {
	favorites, err := s.favoriteIDs(ctx, viewer)
	if err != nil {
		return nil, err
	}

	result := make([]recipe.Recipe, 0, len(records))
	for i := range records {
		r, err := recipe.FromRecord(&records[i])
		if err != nil {
			s.logger.Warn("skipping corrupt recipe", slog.String("recipe_id", records[i].ID.String()), slog.Any("error", err))
			continue
		}
		_, r.IsFavorite = favorites[r.ID]
		result = append(result, r)
	}
	return result, nil
}
