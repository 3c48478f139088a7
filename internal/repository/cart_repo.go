package repository

import (
	"context"

	"github.com/AbyssT34/Ecommerce-Shop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error)
	FindItem(ctx context.Context, userID, productID uuid.UUID) (*model.CartItem, error)
	FindItemByID(ctx context.Context, id, userID uuid.UUID) (*model.CartItem, error)
	Save(ctx context.Context, item *model.CartItem) error
	Delete(ctx context.Context, item *model.CartItem) error
	ClearUser(ctx context.Context, userID uuid.UUID) error
}

type cartRepo struct{ db *gorm.DB }

func NewCartRepository(db *gorm.DB) CartRepository { return &cartRepo{db: db} }

func (r *cartRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *cartRepo) FindItem(ctx context.Context, userID, productID uuid.UUID) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Preload("Product").
		First(&item).Error
	return &item, err
}

func (r *cartRepo) FindItemByID(ctx context.Context, id, userID uuid.UUID) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Preload("Product").
		First(&item).Error
	return &item, err
}

func (r *cartRepo) Save(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *cartRepo) Delete(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Delete(item).Error
}

func (r *cartRepo) ClearUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
