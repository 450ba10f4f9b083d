package engine

import (
	"errors"

	"github.com/yourusername/court-vision/internal/models"
)

// Heuristic bounds keep any single qualitative signal from dominating the
// base probability before damping
const (
	matchupScale     = 100.0
	matchupFloor     = 0.30
	matchupCeil      = 0.70
	injuryPerPoint   = 0.03
	injuryFloor      = 0.35
	injuryCeil       = 0.65
	formScale        = 100.0
	formFloor        = 0.35
	formCeil         = 0.65
	homeCourtBase    = 0.55
	situationalStep  = 0.02
	situationalFloor = 0.40
	situationalCeil  = 0.70
)

// computeHeuristics derives the five base sub-probabilities for a matchup.
// Every heuristic degrades to a sensible center when its inputs are missing.
func (a *Analyzer) computeHeuristics(game *models.Game, injuries models.InjuryMap, data *models.FactorData) BaseHeuristics {
	home, away := game.HomeTeam, game.AwayTeam
	return BaseHeuristics{
		TeamStrength: a.teamStrength(home, away),
		Matchup:      matchupAdvantage(home, away),
		Injury:       injuryDifferential(home, away, injuries),
		Form:         a.recentForm(home, away),
		Situational:  situationalValue(data),
	}
}

// teamStrength uses the Elo expectation when both teams are rated, falling
// back to season win percentage for teams the table has never seen
func (a *Analyzer) teamStrength(home, away *models.Team) float64 {
	pred, err := a.table.PredictMatchup(home.Abbreviation, away.Abbreviation)
	if err == nil {
		return pred.HomeWinProbability
	}
	if !errors.Is(err, models.ErrTeamNotFound) {
		return 0.5
	}
	return clampProb(0.5+(home.Record.WinPercentage()-away.Record.WinPercentage())*0.5, 0.25, 0.75)
}

// matchupAdvantage compares each offense against the opposing defense
func matchupAdvantage(home, away *models.Team) float64 {
	if !home.HasEfficiencyStats() || !away.HasEfficiencyStats() {
		return 0.5
	}
	homeEdge := home.GetOffensiveRating() - away.GetDefensiveRating()
	awayEdge := away.GetOffensiveRating() - home.GetDefensiveRating()
	return clampProb(0.5+(homeEdge-awayEdge)/matchupScale, matchupFloor, matchupCeil)
}

// injuryDifferential leans toward the healthier side
func injuryDifferential(home, away *models.Team, injuries models.InjuryMap) float64 {
	if len(injuries) == 0 {
		return 0.5
	}
	diff := injuries.ImpactScore(away.Abbreviation) - injuries.ImpactScore(home.Abbreviation)
	return clampProb(0.5+diff*injuryPerPoint, injuryFloor, injuryCeil)
}

// recentForm compares trailing rating trends from the Elo table
func (a *Analyzer) recentForm(home, away *models.Team) float64 {
	homeRec, homeErr := a.table.Get(home.Abbreviation)
	awayRec, awayErr := a.table.Get(away.Abbreviation)
	if homeErr != nil || awayErr != nil {
		return 0.5
	}
	window := a.cfg.Elo.TrendWindow
	diff := homeRec.Trend(window) - awayRec.Trend(window)
	return clampProb(0.5+diff/formScale, formFloor, formCeil)
}

// situationalValue starts from the historical home-court edge and nudges it
// by motivation flags when supplied
func situationalValue(data *models.FactorData) float64 {
	value := homeCourtBase
	if data == nil || data.Situational == nil {
		return value
	}
	flags := data.Situational
	if flags.HomeRevengeGame {
		value += situationalStep
	}
	if flags.AwayRevengeGame {
		value -= situationalStep
	}
	if flags.HomePlayoffPush {
		value += situationalStep
	}
	if flags.AwayPlayoffPush {
		value -= situationalStep
	}
	if flags.AwayLongRoadTrip {
		value += situationalStep
	}
	if flags.HomeLetdownSpot {
		value -= situationalStep
	}
	return clampProb(value, situationalFloor, situationalCeil)
}

func clampProb(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
