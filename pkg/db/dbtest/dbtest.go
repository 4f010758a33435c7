// Package dbtest provides an in-memory database preloaded with the
// storefront schema for repository and service tests. The DDL mirrors
// the goose migrations, rewritten for sqlite.
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var schema = []string{
	`CREATE TABLE customers (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone TEXT,
		tier TEXT NOT NULL DEFAULT 'regular',
		is_active INTEGER NOT NULL DEFAULT 1,
		last_login_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE products (
		id TEXT PRIMARY KEY,
		sku TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		description TEXT,
		category TEXT NOT NULL,
		price_cents INTEGER NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE product_offers (
		id TEXT PRIMARY KEY,
		product_id TEXT NOT NULL UNIQUE,
		offer_price_cents INTEGER NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE desktop_details (
		product_id TEXT PRIMARY KEY,
		cpu_type TEXT NOT NULL
	);`,
	`CREATE TABLE laptop_details (
		product_id TEXT PRIMARY KEY,
		cpu_type TEXT NOT NULL,
		battery_type TEXT NOT NULL,
		weight_grams INTEGER NOT NULL
	);`,
	`CREATE TABLE printer_details (
		product_id TEXT PRIMARY KEY,
		printer_type TEXT NOT NULL,
		resolution TEXT NOT NULL
	);`,
	`CREATE TABLE inventory_items (
		product_id TEXT PRIMARY KEY,
		available_qty INTEGER NOT NULL DEFAULT 0 CHECK (available_qty >= 0),
		updated_at DATETIME
	);`,
	`CREATE TABLE baskets (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'open',
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE UNIQUE INDEX idx_baskets_one_open_per_customer
		ON baskets (customer_id) WHERE status = 'open';`,
	`CREATE TABLE basket_lines (
		id TEXT PRIMARY KEY,
		basket_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		unit_price_cents INTEGER NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (basket_id, product_id)
	);`,
	`CREATE TABLE shipping_addresses (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		label TEXT NOT NULL,
		recipient TEXT NOT NULL,
		street TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		zip TEXT NOT NULL,
		country TEXT NOT NULL DEFAULT 'US',
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (customer_id, label)
	);`,
	`CREATE TABLE credit_cards (
		id TEXT PRIMARY KEY,
		customer_id TEXT,
		card_number TEXT NOT NULL UNIQUE,
		security_code TEXT NOT NULL,
		holder_name TEXT NOT NULL,
		billing_address TEXT NOT NULL,
		card_type TEXT NOT NULL,
		expiry_month INTEGER NOT NULL,
		expiry_year INTEGER NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE orders (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		basket_id TEXT NOT NULL UNIQUE,
		card_id TEXT NOT NULL,
		address_id TEXT NOT NULL,
		delivery_status TEXT NOT NULL DEFAULT 'not-delivered',
		total_cents INTEGER NOT NULL,
		placed_at DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE order_lines (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		unit_price_cents INTEGER NOT NULL,
		line_total_cents INTEGER NOT NULL,
		created_at DATETIME
	);`,
}

// Open returns an isolated in-memory database with the full schema
// applied. Each call gets its own database.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:dbtest_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, stmt := range schema {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}
	return conn
}
