package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// RecipeIngredient is one entry of a recipe's requirement list. It carries a
// denormalized ingredient name so recipes render without extra lookups.
type RecipeIngredient struct {
	IngredientID   uuid.UUID `json:"ingredient_id"`
	IngredientName string    `json:"ingredient_name"`
	Quantity       string    `json:"quantity,omitempty"`
}

// RecipeIngredients is stored as a jsonb column.
type RecipeIngredients []RecipeIngredient

func (ri RecipeIngredients) Value() (driver.Value, error) {
	return json.Marshal(ri)
}

func (ri *RecipeIngredients) Scan(value interface{}) error {
	if value == nil {
		*ri = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("recipe ingredients: unsupported scan type")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, ri)
}

// RecipeSteps is an ordered list of textual steps stored as jsonb.
type RecipeSteps []string

func (rs RecipeSteps) Value() (driver.Value, error) {
	return json.Marshal(rs)
}

func (rs *RecipeSteps) Scan(value interface{}) error {
	if value == nil {
		*rs = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("recipe steps: unsupported scan type")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, rs)
}

// Recipe is soft-deleted via Active=false, never physically removed.
type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	Ingredients RecipeIngredients `gorm:"type:jsonb;not null"`
	Steps       RecipeSteps       `gorm:"type:jsonb;not null"`
	PrepTime    *int              // minutes
	CookTime    *int              // minutes
	Servings    int               `gorm:"not null;default:4"`
	Difficulty  *string           // "Easy" | "Medium" | "Hard"
	ImageURL    *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
