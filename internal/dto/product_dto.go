package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name          string          `json:"name"           validate:"required,min=2"`
	SKU           string          `json:"sku"            validate:"required"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"          validate:"required,gt=0"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	ImageURL      *string         `json:"image_url"`
	CategoryID    *string         `json:"category_id"    validate:"omitempty,uuid"`
	// IngredientIDs: ordered list — the first ingredient becomes primary and
	// earlier entries get higher resolver priority.
	IngredientIDs []string `json:"ingredient_ids" validate:"omitempty,dive,uuid"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"           validate:"omitempty,min=2"`
	SKU           *string          `json:"sku"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"          validate:"omitempty,gt=0"`
	ImageURL      *string          `json:"image_url"`
	CategoryID    *string          `json:"category_id"    validate:"omitempty,uuid"`
	IsActive      *bool            `json:"is_active"`
	IngredientIDs []string         `json:"ingredient_ids" validate:"omitempty,dive,uuid"`
}

type AdjustStockRequest struct {
	StockQuantity int    `json:"stock_quantity" validate:"min=0"`
	Reason        string `json:"reason"`
}

type ProductFilter struct {
	CategoryID string `form:"category_id"`
	InStock    bool   `form:"in_stock"`
	Name       string `form:"name"`
	Active     string `form:"active"` // "false" = inactive, "all" = everything, default active only
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ProductIngredientResponse struct {
	IngredientID   string `json:"ingredient_id"`
	IngredientName string `json:"ingredient_name"`
	IsPrimary      bool   `json:"is_primary"`
	Priority       int    `json:"priority"`
}

type ProductResponse struct {
	ID            string                      `json:"id"`
	Name          string                      `json:"name"`
	SKU           string                      `json:"sku"`
	Description   *string                     `json:"description"`
	Price         decimal.Decimal             `json:"price"`
	StockQuantity int                         `json:"stock_quantity"`
	ImageURL      *string                     `json:"image_url"`
	CategoryID    *string                     `json:"category_id"`
	CategoryName  *string                     `json:"category_name"`
	IsActive      bool                        `json:"is_active"`
	Ingredients   []ProductIngredientResponse `json:"ingredients"`
	CreatedAt     string                      `json:"created_at"`
}

type StockMovementResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	Kind        string  `json:"kind"`
	Quantity    int     `json:"quantity"`
	StockBefore int     `json:"stock_before"`
	StockAfter  int     `json:"stock_after"`
	Reason      string  `json:"reason"`
	OrderID     *string `json:"order_id"`
	CreatedAt   string  `json:"created_at"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
