package models

import "time"

// EloHistoryEntry records a single rating update for a team.
// Entries are append-only and chronologically ordered.
type EloHistoryEntry struct {
	Date      time.Time `json:"date"`
	NewRating float64   `json:"new_rating"`
	Delta     float64   `json:"delta"`
	Opponent  string    `json:"opponent"`
	Won       bool      `json:"won"`
}

// EloRecord holds the current rating state for one team
type EloRecord struct {
	Team        string            `json:"team"`
	Rating      float64           `json:"rating"`
	GamesPlayed int               `json:"games_played"`
	Wins        int               `json:"wins"`
	Losses      int               `json:"losses"`
	History     []EloHistoryEntry `json:"history"`
}

// TotalDelta returns the cumulative rating change across the recorded history
func (r *EloRecord) TotalDelta() float64 {
	total := 0.0
	for _, entry := range r.History {
		total += entry.Delta
	}
	return total
}

// Trend returns the rating change over the trailing window of n games,
// or 0 when fewer than two updates exist
func (r *EloRecord) Trend(n int) float64 {
	if len(r.History) == 0 || n <= 0 {
		return 0
	}
	start := len(r.History) - n
	if start < 0 {
		start = 0
	}
	window := r.History[start:]
	trend := 0.0
	for _, entry := range window {
		trend += entry.Delta
	}
	return trend
}
