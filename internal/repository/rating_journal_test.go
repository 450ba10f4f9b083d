package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	_ RatingJournal = NopJournal{}
	_ RatingJournal = (*PostgresRatingJournal)(nil)
)

func TestNopJournal(t *testing.T) {
	journal := NopJournal{}

	assert.NoError(t, journal.Append(context.Background(), JournalEntry{Team: "BOS"}))

	records, err := journal.LoadRecords(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestPostgresJournalRequiresDatabase(t *testing.T) {
	_, err := NewPostgresRatingJournal(nil)
	assert.Error(t, err)
}
