package models

import "time"

// BookOdds represents a point-in-time odds snapshot from a single bookmaker.
// Moneylines are American odds; the spread is quoted from the home side's
// perspective (negative when the home team is favored).
type BookOdds struct {
	Bookmaker     string    `json:"bookmaker" validate:"required"`
	HomeMoneyline int       `json:"home_moneyline"`
	AwayMoneyline int       `json:"away_moneyline"`
	HomeSpread    float64   `json:"home_spread"`
	Total         float64   `json:"total"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// HasMoneyline reports whether both moneyline prices are populated.
// American odds of zero are not a quotable price.
func (b *BookOdds) HasMoneyline() bool {
	return b.HomeMoneyline != 0 && b.AwayMoneyline != 0
}
