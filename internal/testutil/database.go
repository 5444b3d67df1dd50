package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database and skips the test when it
// is not reachable. Expects MySQL on localhost:3306 with a 'pedidos_test'
// schema.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/pedidos_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"orders"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables mirrors the orders migration for tests that do not run the
// migrator.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		client_name VARCHAR(255) NOT NULL,
		client_phone VARCHAR(50) NOT NULL,
		latitude VARCHAR(32) NOT NULL,
		longitude VARCHAR(32) NOT NULL,
		products TEXT NOT NULL,
		total VARCHAR(32) NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'pendiente',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_orders_created_at (created_at)
	)`

	if _, err := db.Exec(createOrdersTable); err != nil {
		t.Logf("failed to create table orders: %v", err)
	}
}
