package recipe

import (
	"time"

	"github.com/google/uuid"
)

// InventoryEntry is one line of a user's kitchen inventory as seen by the
// generation pipeline. Quantity is text and is never converted to a number.
type InventoryEntry struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// Ingredient is a recipe ingredient. Unit is "" when the model gave none.
type Ingredient struct {
	Name        string `json:"name"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	InInventory bool   `json:"inInventory"`
}

// Instruction is a single numbered cooking step.
type Instruction struct {
	Step        int    `json:"step"`
	Instruction string `json:"instruction"`
}

// Recipe is the validated in-memory recipe. IsFavorite is computed per viewer
// at read time and is never stored with the recipe.
type Recipe struct {
	ID                 uuid.UUID     `json:"id"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	CookTime           int           `json:"cookTime"`
	Difficulty         string        `json:"difficulty"`
	Servings           int           `json:"servings"`
	Ingredients        []Ingredient  `json:"ingredients"`
	Instructions       []Instruction `json:"instructions"`
	MatchedIngredients int           `json:"matchedIngredients"`
	TotalIngredients   int           `json:"totalIngredients"`
	Tags               []string      `json:"tags"`
	IsFavorite         bool          `json:"isFavorite"`
	CreatedAt          time.Time     `json:"createdAt"`
}
