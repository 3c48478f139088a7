package repository

import (
	"context"

	"github.com/AbyssT34/Ecommerce-Shop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IngredientRepository interface {
	Create(ctx context.Context, i *model.Ingredient) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error)
	FindByName(ctx context.Context, name string) (*model.Ingredient, error)
	List(ctx context.Context) ([]model.Ingredient, error)
}

type ingredientRepo struct{ db *gorm.DB }

func NewIngredientRepository(db *gorm.DB) IngredientRepository { return &ingredientRepo{db: db} }

func (r *ingredientRepo) Create(ctx context.Context, i *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ingredientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error) {
	var i model.Ingredient
	err := r.db.WithContext(ctx).First(&i, id).Error
	return &i, err
}

func (r *ingredientRepo) FindByName(ctx context.Context, name string) (*model.Ingredient, error) {
	var i model.Ingredient
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *ingredientRepo) List(ctx context.Context) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	err := r.db.WithContext(ctx).Order("name ASC").Find(&ingredients).Error
	return ingredients, err
}
