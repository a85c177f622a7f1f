package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-pantry/backend/internal/recipe"
)

// ErrGenerationUnavailable wraps transport and provider failures.
var ErrGenerationUnavailable = errors.New("recipe generation service is unavailable")

// GenerationService asks the model for recipe suggestions. One call is one
// attempt; nothing is retried and nothing is persisted here.
type GenerationService struct {
	completer Completer
	archiver  PayloadArchiver
	logger    *slog.Logger
}

// NewGenerationService creates a GenerationService. archiver may be nil.
func NewGenerationService(completer Completer, archiver PayloadArchiver, logger *slog.Logger) *GenerationService {
	return &GenerationService{completer: completer, archiver: archiver, logger: logger}
}

// Generate returns the validated suggestions for an inventory snapshot, or
// one of ErrEmptyGenerationResult, *MalformedPayloadError,
// *SchemaValidationError or ErrGenerationUnavailable.
func (s *GenerationService) Generate(ctx context.Context, userID uuid.UUID, inventory []recipe.InventoryEntry) ([]recipe.Recipe, error) {
	prompt := recipe.BuildPrompt(inventory)

	content, err := s.completer.CompleteJSON(ctx, recipe.SystemPrompt, prompt)
	if err != nil {
		s.logger.Error("generation request failed", slog.String("user_id", userID.String()), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}
	if strings.TrimSpace(content) == "" {
		s.logger.Warn("generation returned no content", slog.String("user_id", userID.String()))
		return nil, recipe.ErrEmptyGenerationResult
	}

	recipes, err := recipe.ParsePayload(content)
	if err != nil {
		s.logger.Warn("generation payload rejected", slog.String("user_id", userID.String()), slog.Any("error", err))
		s.archive(ctx, userID, content, err)
		return nil, err
	}

	for _, r := range recipes {
		if r.TotalIngredients != len(r.Ingredients) {
			s.logger.Warn("ingredient count mismatch",
				slog.String("user_id", userID.String()),
				slog.String("title", r.Title),
				slog.Int("total_ingredients", r.TotalIngredients),
				slog.Int("listed_ingredients", len(r.Ingredients)),
			)
		}
	}

	s.logger.Info("recipes generated",
		slog.String("user_id", userID.String()),
		slog.Int("inventory_items", len(inventory)),
		slog.Int("recipes", len(recipes)),
	)
	return recipes, nil
}

func (s *GenerationService) archive(ctx context.Context, userID uuid.UUID, content string, cause error) {
	if s.archiver == nil {
		return
	}
	if err := s.archiver.Archive(ctx, userID, content, cause); err != nil {
		s.logger.Warn("failed to archive rejected payload", slog.String("user_id", userID.String()), slog.Any("error", err))
	}
}
