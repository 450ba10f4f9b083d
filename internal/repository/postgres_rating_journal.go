package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/court-vision/internal/database"
	"github.com/yourusername/court-vision/internal/models"
)

// PostgresRatingJournal persists rating updates to the elo_journal table
type PostgresRatingJournal struct {
	db *database.DB
}

// NewPostgresRatingJournal creates a journal over an initialized database
func NewPostgresRatingJournal(db *database.DB) (*PostgresRatingJournal, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	return &PostgresRatingJournal{db: db}, nil
}

// Append implements RatingJournal
func (j *PostgresRatingJournal) Append(ctx context.Context, entry JournalEntry) error {
	_, err := j.db.Exec(ctx,
		`INSERT INTO elo_journal (team, opponent, game_date, won, new_rating, delta)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.Team, entry.Opponent, entry.GameDate, entry.Won, entry.NewRating, entry.Delta,
	)
	if err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

// LoadRecords implements RatingJournal
func (j *PostgresRatingJournal) LoadRecords(ctx context.Context) ([]models.EloRecord, error) {
	rows, err := j.db.Query(ctx,
		`SELECT team, opponent, game_date, won, new_rating, delta
		 FROM elo_journal
		 ORDER BY team, game_date, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}
	defer rows.Close()

	byTeam := make(map[string]*models.EloRecord)
	var order []string
	for rows.Next() {
		var entry JournalEntry
		if err := rows.Scan(&entry.Team, &entry.Opponent, &entry.GameDate, &entry.Won, &entry.NewRating, &entry.Delta); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		record, ok := byTeam[entry.Team]
		if !ok {
			record = &models.EloRecord{Team: entry.Team}
			byTeam[entry.Team] = record
			order = append(order, entry.Team)
		}
		record.Rating = entry.NewRating
		record.GamesPlayed++
		if entry.Won {
			record.Wins++
		} else {
			record.Losses++
		}
		record.History = append(record.History, models.EloHistoryEntry{
			Date:      entry.GameDate,
			NewRating: entry.NewRating,
			Delta:     entry.Delta,
			Opponent:  entry.Opponent,
			Won:       entry.Won,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	records := make([]models.EloRecord, 0, len(byTeam))
	for _, team := range order {
		records = append(records, *byTeam[team])
	}
	return records, nil
}
