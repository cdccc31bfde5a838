package testutil

import (
	"database/sql"
	"testing"
	"time"

	"courseMarketplace/internal/auth"
	"courseMarketplace/internal/db"
	"courseMarketplace/models"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// Caller is responsible for closing the DB, typically via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// Shared cache so multiple connections see the same DB if needed.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// SessionToken returns a signed session token for the given user.
func SessionToken(t *testing.T, secret string, u *models.User) string {
	t.Helper()
	tok, _, err := auth.Mint(secret, u, time.Hour)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return tok
}
