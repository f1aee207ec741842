package sqlstore

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

var testStore *SQLStore

func SetupTestDB(t *testing.T) {
	var err error
	testStore, err = New("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
}

func TeardownTestDB() {
	testStore.db.Close()
}

func mustRegister(t *testing.T, username string) int {
	t.Helper()
	id, err := testStore.Register(context.Background(), username, "password123", "555-0100")
	if err != nil {
		t.Fatalf("Failed to register %s: %v", username, err)
	}
	return id
}
