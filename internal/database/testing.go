package database

import (
	"context"
	"testing"
	"time"

	"github.com/yourusername/court-vision/internal/config"
)

// SetupTestDB creates a test database connection, skipping when no journal
// database is configured
func SetupTestDB(t *testing.T) *DB {
	cfg, err := config.LoadWithDefaults("../../config/config.yaml.test")
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}
	if !cfg.Database.JournalEnabled {
		t.Skip("rating journal database not configured for tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Initialize(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}

	verifyCtx, verifyCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer verifyCancel()
	if err := db.Ping(verifyCtx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the database connection cleanly
func TeardownTestDB(t *testing.T, db *DB) {
	t.Helper()
	db.Close()
}
