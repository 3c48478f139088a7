package model

import (
	"github.com/google/uuid"
)

// ProductIngredient links one product to one ingredient. When several
// products satisfy the same ingredient, Priority (higher = preferred)
// disambiguates; IsPrimary marks the product's main ingredient.
type ProductIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_ingredient"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_ingredient;index"`
	IsPrimary    bool      `gorm:"not null;default:true"`
	Priority     int       `gorm:"not null;default:0"`

	Product    *Product    `gorm:"foreignKey:ProductID"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}
