package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create tables manually with raw SQL
	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS partners (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		shop_domain TEXT UNIQUE NOT NULL,
		access_token TEXT,
		scope TEXT,
		active BOOLEAN DEFAULT true,
		deleted BOOLEAN DEFAULT false,
		deleted_at TIMESTAMPTZ,
		last_synced_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		partner_shop TEXT NOT NULL,
		external_id TEXT NOT NULL,
		sku TEXT UNIQUE NOT NULL,
		original_sku TEXT,
		title TEXT NOT NULL,
		variant_title TEXT,
		vendor TEXT,
		product_type TEXT,
		partner_price DECIMAL(10,2),
		price DECIMAL(10,2),
		currency TEXT DEFAULT 'USD',
		inventory_quantity INTEGER DEFAULT 0,
		availability TEXT DEFAULT 'IN_STOCK',
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_products_partner_shop ON products (partner_shop);
	`

	err = db.Exec(createTablesSQL).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
