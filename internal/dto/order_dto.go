package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"            validate:"required,min=1,dive"`
	ShippingAddress string             `json:"shipping_address" validate:"required,min=5"`
	PhoneNumber     string             `json:"phone_number"     validate:"required,min=5"`
	Notes           *string            `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status     string  `json:"status"      validate:"required,oneof=pending approved processing shipped delivered rejected cancelled"`
	AdminNotes *string `json:"admin_notes"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	Status          string              `json:"status"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	ShippingAddress string              `json:"shipping_address"`
	PhoneNumber     string              `json:"phone_number"`
	Notes           *string             `json:"notes"`
	AdminNotes      *string             `json:"admin_notes"`
	ApprovedAt      *string             `json:"approved_at"`
	ApprovedBy      *string             `json:"approved_by"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       string              `json:"created_at"`
}

type OrderStatsResponse struct {
	TotalOrders     int64           `json:"total_orders"`
	PendingOrders   int64           `json:"pending_orders"`
	ApprovedOrders  int64           `json:"approved_orders"`
	DeliveredOrders int64           `json:"delivered_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
}
