package infra

import (
	"fmt"

	"auraops/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the SQL objects GORM cannot express
// (the sale number sequence, partial indexes).
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

	if err := db.AutoMigrate(
		&model.Category{},
		&model.Supplier{},
		&model.Ingredient{},
		&model.MenuItem{},
		&model.RecipeLine{},
		&model.StockMovement{},
		&model.Sale{},
		&model.SaleItem{},
		&model.CostHistory{},
		&model.Shift{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches creates SQL objects outside AutoMigrate's vocabulary.
// Every statement is idempotent so restarts are no-ops.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"sale number sequence",
			`CREATE SEQUENCE IF NOT EXISTS sales_sale_number_seq START 1000`},
		{"one open shift per station",
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_shifts_open_station
			   ON shifts (station) WHERE status = 'open'`},
		{"movement ledger lookup",
			`CREATE INDEX IF NOT EXISTS idx_stock_movements_ingredient_created
			   ON stock_movements (ingredient_id, created_at DESC)`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("%s: %w", p.descr, err)
		}
	}
	return nil
}
