package recipe

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-pantry/backend/internal/models"
)

var errNullList = errors.New("stored list is null")

// EncodeIngredients serializes ingredients to their stored JSON text.
func EncodeIngredients(ingredients []Ingredient) (string, error) {
	if ingredients == nil {
		ingredients = []Ingredient{}
	}
	b, err := json.Marshal(ingredients)
	return string(b), err
}

// DecodeIngredients restores ingredients from their stored JSON text.
func DecodeIngredients(data string) ([]Ingredient, error) {
	var ingredients []Ingredient
	if err := json.Unmarshal([]byte(data), &ingredients); err != nil {
		return nil, err
	}
	if ingredients == nil {
		return nil, errNullList
	}
	return ingredients, nil
}

// EncodeInstructions serializes instructions to their stored JSON text.
func EncodeInstructions(instructions []Instruction) (string, error) {
	if instructions == nil {
		instructions = []Instruction{}
	}
	b, err := json.Marshal(instructions)
	return string(b), err
}

// DecodeInstructions restores instructions from their stored JSON text.
func DecodeInstructions(data string) ([]Instruction, error) {
	var instructions []Instruction
	if err := json.Unmarshal([]byte(data), &instructions); err != nil {
		return nil, err
	}
	if instructions == nil {
		return nil, errNullList
	}
	return instructions, nil
}

// ToRecord converts a validated recipe into its storage record owned by userID.
func ToRecord(r Recipe, userID uuid.UUID) (*models.Recipe, error) {
	ingredients, err := EncodeIngredients(r.Ingredients)
	if err != nil {
		return nil, err
	}
	instructions, err := EncodeInstructions(r.Instructions)
	if err != nil {
		return nil, err
	}
	tags := models.StringList(r.Tags)
	if tags == nil {
		tags = models.StringList{}
	}
	return &models.Recipe{
		ID:                 r.ID,
		UserID:             userID,
		Title:              r.Title,
		Description:        r.Description,
		CookTime:           r.CookTime,
		Difficulty:         r.Difficulty,
		Servings:           r.Servings,
		Ingredients:        ingredients,
		Instructions:       instructions,
		MatchedIngredients: r.MatchedIngredients,
		TotalIngredients:   r.TotalIngredients,
		Tags:               tags,
	}, nil
}

// FromRecord restores a recipe from storage. A record whose lists cannot be
// decoded yields a *CorruptRecordError.
func FromRecord(m *models.Recipe) (Recipe, error) {
	ingredients, err := DecodeIngredients(m.Ingredients)
	if err != nil {
		return Recipe{}, &CorruptRecordError{RecipeID: m.ID, Field: "ingredients", Err: err}
	}
	instructions, err := DecodeInstructions(m.Instructions)
	if err != nil {
		return Recipe{}, &CorruptRecordError{RecipeID: m.ID, Field: "instructions", Err: err}
	}
	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}
	return Recipe{
		ID:                 m.ID,
		Title:              m.Title,
		Description:        m.Description,
		CookTime:           m.CookTime,
		Difficulty:         m.Difficulty,
		Servings:           m.Servings,
		Ingredients:        ingredients,
		Instructions:       instructions,
		MatchedIngredients: m.MatchedIngredients,
		TotalIngredients:   m.TotalIngredients,
		Tags:               tags,
		CreatedAt:          m.CreatedAt,
	}, nil
}
