package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Transaction history, append-only
		CREATE TABLE fund_transaction (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			date VARCHAR(10) NOT NULL,
			user VARCHAR(100) NOT NULL,
			type VARCHAR(10) NOT NULL,
			amount FLOAT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- One total fund value per calendar day
		CREATE TABLE nav_point (
			date VARCHAR(10) NOT NULL PRIMARY KEY,
			nav FLOAT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Append-only admin audit trail
		CREATE TABLE audit_event (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			timestamp DATETIME NOT NULL,
			action VARCHAR(20) NOT NULL,
			details TEXT NOT NULL,
			admin VARCHAR(100) NOT NULL
		);

		-- Key/value settings (fee fractions)
		CREATE TABLE setting (
			"key" VARCHAR(30) NOT NULL PRIMARY KEY,
			value VARCHAR(255) NOT NULL,
			updated_at DATETIME
		);

		-- Materialized per-user valuations
		CREATE TABLE valuation_snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			date VARCHAR(10) NOT NULL,
			user VARCHAR(100) NOT NULL,
			shares FLOAT NOT NULL,
			value FLOAT NOT NULL,
			after_fees FLOAT NOT NULL,
			profit FLOAT NOT NULL,
			calculated_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			CONSTRAINT uq_snapshot_date_user UNIQUE (date, user)
		);

		-- Indexes for performance
		CREATE INDEX ix_fund_transaction_date ON fund_transaction(date);
		CREATE INDEX ix_fund_transaction_user ON fund_transaction(user);
		CREATE INDEX ix_audit_event_timestamp ON audit_event(timestamp);
		CREATE INDEX ix_valuation_snapshot_date ON valuation_snapshot(date);
		CREATE INDEX ix_valuation_snapshot_user ON valuation_snapshot(user);
	`

	_, err := db.Exec(schema)
	return err
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
//
// Example usage:
//
//	testutil.AssertRowCount(t, db, "fund_transaction", 2)
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
