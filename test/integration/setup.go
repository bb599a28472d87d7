package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(50) PRIMARY KEY,
			role VARCHAR(20) NOT NULL
		);

		CREATE TABLE IF NOT EXISTS menu_items (
			id VARCHAR(50) PRIMARY KEY,
			restaurant_id VARCHAR(50) NOT NULL,
			name VARCHAR(255) NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			in_stock BOOLEAN NOT NULL DEFAULT TRUE
		);

		CREATE TABLE IF NOT EXISTS carts (
			customer_id VARCHAR(50) PRIMARY KEY,
			restaurant_id VARCHAR(50) NOT NULL,
			total DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS cart_items (
			customer_id VARCHAR(50) NOT NULL REFERENCES carts(customer_id) ON DELETE CASCADE,
			menu_item_id VARCHAR(50) NOT NULL,
			name VARCHAR(255) NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			position INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_id VARCHAR(50) NOT NULL,
			restaurant_id VARCHAR(50) NOT NULL,
			driver_id VARCHAR(50),
			total DOUBLE PRECISION NOT NULL,
			delivery_lat DOUBLE PRECISION NOT NULL DEFAULT 0,
			delivery_lng DOUBLE PRECISION NOT NULL DEFAULT 0,
			payment_method VARCHAR(50) NOT NULL,
			voucher_code VARCHAR(50),
			status VARCHAR(20) NOT NULL,
			rating INTEGER,
			feedback TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id VARCHAR(50) NOT NULL,
			name VARCHAR(255) NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0)
		);

		CREATE INDEX IF NOT EXISTS idx_cart_items_customer_id ON cart_items(customer_id);
		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant_id ON menu_items(restaurant_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCatalog inserts test menu item and user data into the database.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	menuItems := []struct {
		id           string
		restaurantID string
		name         string
		price        float64
		inStock      bool
	}{
		{"M001", "R001", "Pad Thai", 12.50, true},
		{"M002", "R001", "Spring Rolls", 5.00, true},
		{"M003", "R001", "Green Curry", 14.00, false},
		{"M050", "R002", "Burrito", 9.00, true},
	}

	for _, m := range menuItems {
		_, err := pool.Exec(ctx,
			"INSERT INTO menu_items (id, restaurant_id, name, price, in_stock) VALUES ($1, $2, $3, $4, $5)",
			m.id, m.restaurantID, m.name, m.price, m.inStock,
		)
		if err != nil {
			t.Fatalf("failed to seed menu item %s: %v", m.id, err)
		}
	}

	users := []struct {
		id   string
		role string
	}{
		{"C001", "customer"},
		{"C002", "customer"},
		{"REST01", "restaurant"},
		{"D001", "driver"},
		{"A001", "admin"},
	}

	for _, u := range users {
		_, err := pool.Exec(ctx,
			"INSERT INTO users (id, role) VALUES ($1, $2)",
			u.id, u.role,
		)
		if err != nil {
			t.Fatalf("failed to seed user %s: %v", u.id, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "cart_items", "carts", "menu_items", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
