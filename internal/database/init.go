package database

import (
	"context"
	"fmt"

	"github.com/yourusername/court-vision/internal/config"
)

// journalSchema is the append-only rating journal. One row per applied Elo
// update; the table is never updated or deleted from, so the full history for
// a team is its ordered rows.
const journalSchema = `
CREATE TABLE IF NOT EXISTS elo_journal (
	id          BIGSERIAL PRIMARY KEY,
	team        TEXT        NOT NULL,
	opponent    TEXT        NOT NULL,
	game_date   TIMESTAMPTZ NOT NULL,
	won         BOOLEAN     NOT NULL,
	new_rating  DOUBLE PRECISION NOT NULL,
	delta       DOUBLE PRECISION NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_elo_journal_team_date ON elo_journal (team, game_date);
`

// Initialize creates a database connection pool and ensures the rating
// journal schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if _, err := db.pool.Exec(ctx, journalSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure rating journal schema: %w", err)
	}

	return db, nil
}
