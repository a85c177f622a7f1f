package recipe

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrEmptyGenerationResult is returned when the model answered with no content.
	ErrEmptyGenerationResult = errors.New("recipe generation returned no content")
	// ErrMalformedGenerationPayload matches any *MalformedPayloadError.
	ErrMalformedGenerationPayload = errors.New("recipe generation returned malformed JSON")
	// ErrSchemaValidation matches any *SchemaValidationError.
	ErrSchemaValidation = errors.New("generated recipes do not match the expected format")
	// ErrCorruptRecipeRecord matches any *CorruptRecordError.
	ErrCorruptRecipeRecord = errors.New("stored recipe is corrupt")

	ErrRecipeNotFound        = errors.New("recipe not found")
	ErrInventoryItemNotFound = errors.New("inventory item not found")
)

// MalformedPayloadError wraps the parse failure of a generation payload.
type MalformedPayloadError struct {
	Err error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedGenerationPayload, e.Err)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }

func (e *MalformedPayloadError) Is(target error) bool {
	return target == ErrMalformedGenerationPayload
}

// SchemaValidationError names the first field that broke the recipe contract.
type SchemaValidationError struct {
	Path    string
	Message string
}

func (e *SchemaValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", ErrSchemaValidation, e.Message)
	}
	return fmt.Sprintf("%s: %s %s", ErrSchemaValidation, e.Path, e.Message)
}

func (e *SchemaValidationError) Is(target error) bool {
	return target == ErrSchemaValidation
}

// CorruptRecordError reports a stored recipe whose serialized lists cannot be decoded.
type CorruptRecordError struct {
	RecipeID uuid.UUID
	Field    string
	Err      error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("recipe %s has corrupt %s: %v", e.RecipeID, e.Field, e.Err)
}

func (e *CorruptRecordError) Unwrap() error { return e.Err }

func (e *CorruptRecordError) Is(target error) bool {
	return target == ErrCorruptRecipeRecord
}
