package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order status values. Stock is only touched on two transitions:
// pending → approved deducts it, approved → rejected restores it.
const (
	OrderStatusPending    = "pending"
	OrderStatusApproved   = "approved"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusRejected   = "rejected"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known status values.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusRejected,
		OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ShippingAddress string          `gorm:"type:text;not null"`
	PhoneNumber     string          `gorm:"not null"`
	Notes           *string         `gorm:"type:text"`
	AdminNotes      *string         `gorm:"type:text"`
	ApprovedAt      *time.Time
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	User  *User       `gorm:"foreignKey:UserID"`
	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots unit price, name and SKU at creation time so later
// product edits never retroactively change historical orders.
type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	Quantity    int       `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ProductName string          `gorm:"not null"`
	ProductSKU  string          `gorm:"not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
