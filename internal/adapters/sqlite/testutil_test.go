// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for tests.
// All setup goes through db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements in test files.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/vocare/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every pooled connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedNeed inserts an open board need and returns its ID.
func seedNeed(t *testing.T, database *sql.DB, id, location string, createdAt time.Time) string {
	t.Helper()
	_, err := database.Exec(
		`INSERT INTO hunger_feed (id, description, location, category, creator_id, status, active, created_at)
		 VALUES (?, 'Test need', ?, 'service', 'creator', 'open', 1, ?)`,
		id, location, createdAt,
	)
	if err != nil {
		t.Fatalf("failed to seed need: %v", err)
	}
	return id
}
