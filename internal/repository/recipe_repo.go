package repository

import (
	"context"

	"github.com/AbyssT34/Ecommerce-Shop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecipeRepository interface {
	Create(ctx context.Context, rec *model.Recipe) error
	// FindAllActive returns active recipes only, newest first.
	FindAllActive(ctx context.Context) ([]model.Recipe, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	Update(ctx context.Context, rec *model.Recipe) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type recipeRepo struct{ db *gorm.DB }

func NewRecipeRepository(db *gorm.DB) RecipeRepository { return &recipeRepo{db: db} }

func (r *recipeRepo) Create(ctx context.Context, rec *model.Recipe) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recipeRepo) FindAllActive(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.WithContext(ctx).
		Where("active = true").
		Order("created_at DESC").
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var rec model.Recipe
	err := r.db.WithContext(ctx).Where("active = true").First(&rec, id).Error
	return &rec, err
}

func (r *recipeRepo) Update(ctx context.Context, rec *model.Recipe) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *recipeRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ?", id).Update("active", false).Error
}
