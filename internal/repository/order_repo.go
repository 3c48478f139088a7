package repository

import (
	"context"
	"time"

	"github.com/AbyssT34/Ecommerce-Shop/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindAll(ctx context.Context) ([]model.Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	Update(ctx context.Context, o *model.Order) error
	UpdateTx(tx *gorm.DB, o *model.Order) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	Count(ctx context.Context) (int64, error)
	// RevenueTotal sums total_amount over committed statuses
	// (approved, processing, shipped, delivered).
	RevenueTotal(ctx context.Context) (decimal.Decimal, error)
	// FindPendingOlderThan powers the reminder cron.
	FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]model.Order, error)

	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items").
		First(&o, id).Error
	return &o, err
}

func (r *orderRepo) FindAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) Update(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *orderRepo) UpdateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Save(o).Error
}

func (r *orderRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *orderRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&n).Error
	return n, err
}

func (r *orderRepo) RevenueTotal(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("SUM(total_amount)").
		Where("status IN ?", []string{
			model.OrderStatusApproved, model.OrderStatusProcessing,
			model.OrderStatusShipped, model.OrderStatusDelivered,
		}).
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *orderRepo) FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.OrderStatusPending, cutoff).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
