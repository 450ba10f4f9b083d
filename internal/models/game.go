package models

import (
	"time"

	"github.com/google/uuid"
)

// FinalScore holds the actual result of a completed game (backtesting only)
type FinalScore struct {
	Home int `json:"home" validate:"gte=0"`
	Away int `json:"away" validate:"gte=0"`
}

// HomeWon reports whether the home side won outright
func (f FinalScore) HomeWon() bool {
	return f.Home > f.Away
}

// Game represents a single matchup with its market snapshot.
// Immutable once constructed for a given analysis pass.
type Game struct {
	ID         uuid.UUID   `json:"id" validate:"required"`
	HomeTeam   *Team       `json:"home_team" validate:"required"`
	AwayTeam   *Team       `json:"away_team" validate:"required"`
	Tipoff     time.Time   `json:"tipoff" validate:"required"`
	Odds       []BookOdds  `json:"odds"`
	FinalScore *FinalScore `json:"final_score,omitempty"`
}

// Validate checks structural requirements before analysis
func (g *Game) Validate() error {
	if g.HomeTeam == nil || g.AwayTeam == nil {
		return ErrMissingTeams
	}
	return nil
}

// IsUpcoming reports whether the game has not tipped off yet
func (g *Game) IsUpcoming() bool {
	return g.FinalScore == nil && time.Now().Before(g.Tipoff)
}

// HasMarket reports whether at least one bookmaker line is attached
func (g *Game) HasMarket() bool {
	return len(g.Odds) > 0
}
