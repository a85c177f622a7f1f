package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-pantry/backend/internal/recipe"
	"github.com/pageza/alchemorsel-pantry/backend/internal/service"
)

// statusFor maps a domain error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, recipe.ErrRecipeNotFound), errors.Is(err, recipe.ErrInventoryItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, recipe.ErrEmptyGenerationResult),
		errors.Is(err, recipe.ErrMalformedGenerationPayload),
		errors.Is(err, recipe.ErrSchemaValidation),
		errors.Is(err, service.ErrGenerationUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": msg}. Unknown errors are logged and
// hidden behind a generic message.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError && !errors.Is(err, recipe.ErrCorruptRecipeRecord) {
		logger.Error("request failed", slog.String("path", c.FullPath()), slog.Any("error", err))
		msg = "internal server error"
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}
