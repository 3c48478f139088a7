package infra

import (
	"fmt"

	"github.com/AbyssT34/Ecommerce-Shop/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for every table, then applies the idempotent SQL patches AutoMigrate cannot
// express (partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates the schema. Also used by integration tests
// against throwaway containers.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return fmt.Errorf("pgcrypto extension: %w", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Ingredient{},
		&model.ProductIngredient{},
		&model.Recipe{},
		&model.Order{},
		&model.OrderItem{},
		&model.CartItem{},
		&model.StockMovement{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle.
// Safe to re-run on an already-patched schema.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index backing the ingredient resolver query:
		// candidates are filtered on stock > 0 and is_active before ordering.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_products_in_stock') THEN
		    CREATE INDEX idx_products_in_stock
		        ON products (stock_quantity)
		        WHERE stock_quantity > 0 AND is_active = true;
		  END IF;
		END $$`,
		// Pending-orders scan used by the reminder cron.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_orders_pending_created') THEN
		    CREATE INDEX idx_orders_pending_created
		        ON orders (created_at)
		        WHERE status = 'pending';
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
