// internal/services/testdb_test.go
package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/buyx/backend/internal/models"
)

// newTestDB opens an in-memory sqlite database with the storefront schema
// created by hand. The production columns use Postgres types (uuid, text[],
// jsonb) that AutoMigrate cannot express here, but every one of them scans
// cleanly through sqlite's dynamic typing.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// In-memory sqlite is per-connection; a second pooled connection would
	// see an empty database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, ddl := range testSchema {
		require.NoError(t, db.Exec(ddl).Error)
	}

	return db
}

var testSchema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		user_type TEXT NOT NULL DEFAULT 'customer',
		profile_data TEXT,
		last_login_at DATETIME
	)`,
	`CREATE TABLE products (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		distributor_id TEXT NOT NULL,
		brand TEXT NOT NULL,
		model_name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		images TEXT,
		price NUMERIC NOT NULL,
		original_price NUMERIC,
		discount INTEGER DEFAULT 0,
		features TEXT,
		specifications TEXT,
		stock INTEGER DEFAULT 0,
		is_available NUMERIC DEFAULT 1
	)`,
	`CREATE TABLE cart_items (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		user_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1,
		UNIQUE (user_id, product_id)
	)`,
	`CREATE TABLE orders (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		user_id TEXT NOT NULL,
		order_number TEXT NOT NULL UNIQUE,
		delivery_name TEXT NOT NULL,
		delivery_phone TEXT NOT NULL,
		delivery_email TEXT NOT NULL,
		delivery_address TEXT NOT NULL,
		delivery_location TEXT,
		total_amount NUMERIC NOT NULL,
		status TEXT DEFAULT 'pending',
		payment_status TEXT DEFAULT 'pending',
		payment_id TEXT,
		payment_reference TEXT
	)`,
	`CREATE TABLE order_items (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		order_id TEXT NOT NULL,
		product_id TEXT,
		product_name TEXT NOT NULL,
		product_price NUMERIC NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE reviews (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		product_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		rating INTEGER NOT NULL,
		comment TEXT,
		UNIQUE (product_id, user_id)
	)`,
}

// seedProduct inserts a catalog entry with the given stock. Price 10000 at
// 10% discount, so the effective unit price is 9000.
func seedProduct(t *testing.T, db *gorm.DB, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		DistributorID: uuid.New(),
		Brand:         "Samsung",
		ModelName:     "Galaxy S24",
		Slug:          "samsung-galaxy-s24-" + uuid.NewString()[:8],
		Price:         decimal.NewFromInt(10000),
		Discount:      10,
		Stock:         stock,
		IsAvailable:   true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
