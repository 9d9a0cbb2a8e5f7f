package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens a SQLite database file directly, bypassing the code
// under test
func OpenSQLite(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}
