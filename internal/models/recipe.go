package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// StringList stores a string slice as a JSON array in a text column
type StringList []string

// Value implements the driver.Valuer interface
func (a StringList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringList) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*a = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
	return json.Unmarshal(raw, a)
}

// Recipe is the storage representation of a generated recipe. Ingredients and
// Instructions hold the serialized JSON produced by the recipe normalizer.
type Recipe struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	UserID             uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Title              string           `gorm:"size:255;not null" json:"title"`
	Description        string           `gorm:"type:text" json:"description"`
	CookTime           int              `gorm:"not null;default:0" json:"cook_time"`
	Difficulty         string           `gorm:"size:50" json:"difficulty"`
	Servings           int              `gorm:"not null;default:0" json:"servings"`
	Ingredients        string           `gorm:"type:text;not null" json:"ingredients"`
	Instructions       string           `gorm:"type:text;not null" json:"instructions"`
	MatchedIngredients int              `gorm:"not null;default:0" json:"matched_ingredients"`
	TotalIngredients   int              `gorm:"not null;default:0" json:"total_ingredients"`
	Tags               StringList       `gorm:"type:text;not null" json:"tags"`
	Embedding          *pgvector.Vector `gorm:"type:vector(3)" json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Tags == nil {
		r.Tags = StringList{}
	}
	return nil
}
