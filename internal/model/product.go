package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item. StockQuantity is the authoritative
// quantity-on-hand and is only mutated through the stock primitives on the
// product repository (order approval/rejection, manual adjustment) — never
// by read-then-write in application code.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"index;not null"`
	SKU           string    `gorm:"uniqueIndex;not null"`
	Description   *string
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	ImageURL      *string
	CategoryID    *uuid.UUID `gorm:"type:uuid;index"`
	IsActive      bool       `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Category           *Category           `gorm:"foreignKey:CategoryID"`
	ProductIngredients []ProductIngredient `gorm:"foreignKey:ProductID"`
}
