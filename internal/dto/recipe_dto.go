package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type RecipeIngredientEntry struct {
	IngredientID   string `json:"ingredient_id"   validate:"required,uuid"`
	IngredientName string `json:"ingredient_name" validate:"required"`
	Quantity       string `json:"quantity"`
}

type CreateRecipeRequest struct {
	Name        string                  `json:"name"        validate:"required,min=2"`
	Description string                  `json:"description"`
	Ingredients []RecipeIngredientEntry `json:"ingredients" validate:"required,min=1,dive"`
	Steps       []string                `json:"steps"       validate:"required,min=1"`
	PrepTime    *int                    `json:"prep_time"   validate:"omitempty,min=0"`
	CookTime    *int                    `json:"cook_time"   validate:"omitempty,min=0"`
	Servings    int                     `json:"servings"    validate:"min=1"`
	Difficulty  *string                 `json:"difficulty"  validate:"omitempty,oneof=Easy Medium Hard"`
	ImageURL    *string                 `json:"image_url"`
}

type SuggestFromCartRequest struct {
	ProductIDs []string `json:"product_ids" validate:"dive,uuid"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type RecipeResponse struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Ingredients []RecipeIngredientEntry `json:"ingredients"`
	Steps       []string                `json:"steps"`
	PrepTime    *int                    `json:"prep_time"`
	CookTime    *int                    `json:"cook_time"`
	Servings    int                     `json:"servings"`
	Difficulty  *string                 `json:"difficulty"`
	ImageURL    *string                 `json:"image_url"`
	Active      bool                    `json:"active"`
	CreatedAt   string                  `json:"created_at"`
}

// ProductSnapshot is the slice of product fields embedded in suggestions.
type ProductSnapshot struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      *string         `json:"image_url"`
}

// ProductSuggestion is the single product chosen to represent an ingredient
// (highest priority, ties broken by deepest stock).
type ProductSuggestion struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Product        ProductSnapshot `json:"product"`
	IsPrimary      bool            `json:"is_primary"`
	Priority       int             `json:"priority"`
}

// AnnotatedIngredient is a recipe ingredient entry flagged with whether an
// in-stock product currently backs it.
type AnnotatedIngredient struct {
	IngredientID   string `json:"ingredient_id"`
	IngredientName string `json:"ingredient_name"`
	Quantity       string `json:"quantity,omitempty"`
	IsAvailable    bool   `json:"is_available"`
}

// RecipeAvailability is one entry of GET /v1/recipes/available: the recipe
// plus the availability metadata the ranking is computed from.
type RecipeAvailability struct {
	Recipe                  RecipeResponse        `json:"recipe"`
	Ingredients             []AnnotatedIngredient `json:"ingredients"`
	ProductSuggestions      []ProductSuggestion   `json:"product_suggestions"`
	TotalAvailability       int                   `json:"total_availability"`
	MissingIngredientsCount int                   `json:"missing_ingredients_count"`
	IsFullyAvailable        bool                  `json:"is_fully_available"`
}

// RecipeWithProducts is the single-recipe resolution form.
type RecipeWithProducts struct {
	Recipe             RecipeResponse      `json:"recipe"`
	ProductSuggestions []ProductSuggestion `json:"product_suggestions"`
}

// CartSuggestionSplit partitions a recipe's suggestions by whether the
// backing ingredient is already satisfied by the cart.
type CartSuggestionSplit struct {
	InCart []ProductSuggestion `json:"in_cart"`
	Needed []ProductSuggestion `json:"needed"`
}

// RecipeCartMatch is one entry of POST /v1/recipes/suggest-from-cart.
type RecipeCartMatch struct {
	Recipe                  RecipeResponse      `json:"recipe"`
	MatchPercentage         int                 `json:"match_percentage"`
	IngredientsInCart       int                 `json:"ingredients_in_cart"`
	IngredientsNeeded       int                 `json:"ingredients_needed"`
	TotalIngredients        int                 `json:"total_ingredients"`
	ProductSuggestions      CartSuggestionSplit `json:"product_suggestions"`
	EstimatedAdditionalCost decimal.Decimal     `json:"estimated_additional_cost"`
}
