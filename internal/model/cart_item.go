package model

import (
	"time"

	"github.com/google/uuid"
)

// CartItem holds one product in a user's cart. One row per (user, product);
// adding the same product again merges quantities.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_product"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
