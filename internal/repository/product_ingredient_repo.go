package repository

import (
	"context"

	"github.com/AbyssT34/Ecommerce-Shop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductIngredientRepository resolves the product↔ingredient join table.
type ProductIngredientRepository interface {
	// BestForIngredient returns the single best in-stock product link for an
	// ingredient: stock > 0, ordered by priority DESC then stock DESC.
	// Returns gorm.ErrRecordNotFound when no in-stock product backs it.
	BestForIngredient(ctx context.Context, ingredientID uuid.UUID) (*model.ProductIngredient, error)

	// FindByProductIDs returns every link of the given products regardless of
	// stock. Used to build a cart's ingredient set.
	FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]model.ProductIngredient, error)

	CreateMany(ctx context.Context, links []model.ProductIngredient) error
	DeleteForProduct(ctx context.Context, productID uuid.UUID) error
}

type productIngredientRepo struct{ db *gorm.DB }

func NewProductIngredientRepository(db *gorm.DB) ProductIngredientRepository {
	return &productIngredientRepo{db: db}
}

func (r *productIngredientRepo) BestForIngredient(ctx context.Context, ingredientID uuid.UUID) (*model.ProductIngredient, error) {
	var pi model.ProductIngredient
	err := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = product_ingredients.product_id").
		Where("product_ingredients.ingredient_id = ? AND products.stock_quantity > 0 AND products.is_active = true", ingredientID).
		Order("product_ingredients.priority DESC, products.stock_quantity DESC").
		Preload("Product").
		Preload("Ingredient").
		First(&pi).Error
	if err != nil {
		return nil, err
	}
	return &pi, nil
}

func (r *productIngredientRepo) FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]model.ProductIngredient, error) {
	var links []model.ProductIngredient
	err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&links).Error
	return links, err
}

func (r *productIngredientRepo) CreateMany(ctx context.Context, links []model.ProductIngredient) error {
	if len(links) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

func (r *productIngredientRepo) DeleteForProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.ProductIngredient{}).Error
}
