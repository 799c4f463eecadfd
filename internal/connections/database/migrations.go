package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// is_confirmed is a nullable boolean: NULL is pending, true confirmed,
// false rejected.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL CHECK (price >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		customer_id TEXT NOT NULL,
		table_number INT NOT NULL CHECK (table_number > 0),
		is_confirmed BOOLEAN,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_lines (
		id SERIAL PRIMARY KEY,
		order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id INT NOT NULL REFERENCES products(id),
		quantity INT NOT NULL CHECK (quantity >= 1),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_lines_order_id ON order_lines(order_id)`,
}

// Migrate creates the tables on startup if they are missing.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
