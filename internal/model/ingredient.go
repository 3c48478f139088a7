package model

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is immutable reference data: once created it is never removed,
// only linked to products via ProductIngredient rows.
type Ingredient struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	CreatedAt   time.Time

	ProductIngredients []ProductIngredient `gorm:"foreignKey:IngredientID"`
}
