package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pageza/alchemorsel-pantry/backend/internal/recipe"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// QuantityValue accepts a quantity sent either as a string or as a JSON
// number. Numbers keep their literal text, so 0.10 stays "0.10".
type QuantityValue struct {
	Value string
}

func (q *QuantityValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		q.Value = str
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		q.Value = num.String()
		return nil
	}

	return fmt.Errorf("invalid quantity format")
}

func (q QuantityValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.Value)
}

type InventoryRequest struct {
	Name     string        `json:"name" binding:"required"`
	Quantity QuantityValue `json:"quantity"`
	Unit     *string       `json:"unit"`
}

// GenerateResponse is returned by POST /recipes/generate. Dropped counts
// suggestions that were generated but could not be saved.
type GenerateResponse struct {
	Recipes []recipe.Recipe `json:"recipes"`
	Dropped int             `json:"dropped"`
}

type RecipeListResponse struct {
	Recipes []recipe.Recipe `json:"recipes"`
}

// GenerationLimitResponse describes the caller's generation allowance.
// Reset is a unix timestamp.
type GenerationLimitResponse struct {
	Limited   bool   `json:"limited"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Reset     int64  `json:"reset"`
	Window    string `json:"window"`
}
