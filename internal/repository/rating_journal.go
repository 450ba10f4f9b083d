// Package repository persists the engine's rating history. The journal is
// append-only: every applied Elo update becomes one immutable row, and a
// team's full history is its ordered rows.
package repository

import (
	"context"
	"time"

	"github.com/yourusername/court-vision/internal/models"
)

// JournalEntry is one applied rating update
type JournalEntry struct {
	Team      string    `json:"team"`
	Opponent  string    `json:"opponent"`
	GameDate  time.Time `json:"game_date"`
	Won       bool      `json:"won"`
	NewRating float64   `json:"new_rating"`
	Delta     float64   `json:"delta"`
}

// RatingJournal records rating updates and restores the table on startup
type RatingJournal interface {
	// Append records one rating update. The journal never mutates prior rows.
	Append(ctx context.Context, entry JournalEntry) error
	// LoadRecords rebuilds per-team Elo records from the full journal,
	// histories in chronological order.
	LoadRecords(ctx context.Context) ([]models.EloRecord, error)
}

// NopJournal discards writes and restores nothing. Used when the journal
// database is not configured; ratings then live in process memory only.
type NopJournal struct{}

// Append implements RatingJournal
func (NopJournal) Append(context.Context, JournalEntry) error { return nil }

// LoadRecords implements RatingJournal
func (NopJournal) LoadRecords(context.Context) ([]models.EloRecord, error) { return nil, nil }
