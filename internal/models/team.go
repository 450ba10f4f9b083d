package models

// League-average efficiency values used when a team's stats are unavailable
const (
	LeagueAveragePace            = 100.0
	LeagueAverageOffensiveRating = 110.0
	LeagueAverageDefensiveRating = 110.0
)

// TeamRecord represents a season win-loss record
type TeamRecord struct {
	Wins   int `json:"wins" validate:"gte=0"`
	Losses int `json:"losses" validate:"gte=0"`
}

// WinPercentage returns the season win percentage. A team with no completed
// games is treated as league average (0.5) rather than dividing by zero.
func (r TeamRecord) WinPercentage() float64 {
	games := r.Wins + r.Losses
	if games == 0 {
		return 0.5
	}
	return float64(r.Wins) / float64(games)
}

// GamesPlayed returns the number of completed games on the record
func (r TeamRecord) GamesPlayed() int {
	return r.Wins + r.Losses
}

// Team represents a team entering an analysis pass
type Team struct {
	Abbreviation    string     `json:"abbreviation" validate:"required"`
	Name            string     `json:"name" validate:"required"`
	Record          TeamRecord `json:"record"`
	Pace            *float64   `json:"pace,omitempty"`
	OffensiveRating *float64   `json:"offensive_rating,omitempty"`
	DefensiveRating *float64   `json:"defensive_rating,omitempty"`
}

// GetPace returns the team's pace or the league average when unavailable
func (t *Team) GetPace() float64 {
	if t.Pace == nil || *t.Pace <= 0 {
		return LeagueAveragePace
	}
	return *t.Pace
}

// GetOffensiveRating returns the offensive rating or the league average
func (t *Team) GetOffensiveRating() float64 {
	if t.OffensiveRating == nil || *t.OffensiveRating <= 0 {
		return LeagueAverageOffensiveRating
	}
	return *t.OffensiveRating
}

// GetDefensiveRating returns the defensive rating or the league average
func (t *Team) GetDefensiveRating() float64 {
	if t.DefensiveRating == nil || *t.DefensiveRating <= 0 {
		return LeagueAverageDefensiveRating
	}
	return *t.DefensiveRating
}

// HasEfficiencyStats reports whether real (non-fallback) efficiency data is present
func (t *Team) HasEfficiencyStats() bool {
	return t.Pace != nil && t.OffensiveRating != nil && t.DefensiveRating != nil
}
