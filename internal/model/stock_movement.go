package model

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement records every change of a product's stock quantity.
// Created automatically on order approval/rejection and manual adjustment.
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind        string    `gorm:"not null"` // "order_approval" | "order_rejection" | "manual_adjustment"
	Quantity    int       `gorm:"not null"` // positive = stock in, negative = stock out
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      string
	OrderID     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
