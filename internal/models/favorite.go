package models

import (
	"time"

	"github.com/google/uuid"
)

// RecipeFavorite marks a recipe as a favorite of a user. The composite primary
// key allows at most one row per (user, recipe) pair; existence is the only state.
type RecipeFavorite struct {
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"recipe_id"`
}

func (RecipeFavorite) TableName() string {
	return "recipe_favorites"
}

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&InventoryItem{},
		&Recipe{},
		&RecipeFavorite{},
	}
}
