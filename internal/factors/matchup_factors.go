package factors

import (
	"fmt"

	"github.com/yourusername/court-vision/internal/models"
)

// headToHead scores the recent meeting record between the two teams
func (b *Bank) headToHead(data *models.FactorData) models.FactorResult {
	if data == nil || data.HeadToHead == nil {
		return models.NeutralFactor("head_to_head", weightHeadToHead,
			"No head-to-head history available", "matchup_history")
	}

	h2h := data.HeadToHead
	winRate := models.CoverRate(h2h.HomeWins, h2h.AwayWins)
	lean := winRate - 0.5

	return models.FactorResult{
		Name:           "head_to_head",
		Weight:         weightHeadToHead,
		Advantage:      advantageFromSign(lean),
		Impact:         clamp(abs(lean)*20, 0, 10),
		ProbAdjustment: clamp(lean*6, -3, 3),
		Insight: fmt.Sprintf("Home side has won %d of the last %d meetings (avg margin %+.1f)",
			h2h.HomeWins, h2h.HomeWins+h2h.AwayWins, h2h.AverageMargin),
		DataSource:    "matchup_history",
		DataAvailable: true,
	}
}

// paceMismatch scores tempo control. A large pace gap favors the side with
// the stronger offense, which tends to dictate tempo.
func (b *Bank) paceMismatch(game *models.Game) models.FactorResult {
	home, away := game.HomeTeam, game.AwayTeam
	if home == nil || away == nil || home.Pace == nil || away.Pace == nil {
		return models.NeutralFactor("pace_mismatch", weightPace,
			"Pace data unavailable for one or both teams", "team_stats")
	}

	paceDiff := home.GetPace() - away.GetPace()
	if abs(paceDiff) < 1.0 {
		return models.FactorResult{
			Name:          "pace_mismatch",
			Weight:        weightPace,
			Advantage:     models.AdvantageNeutral,
			Insight:       "Both teams play at a similar tempo",
			DataSource:    "team_stats",
			DataAvailable: true,
		}
	}

	controller := home.GetOffensiveRating() - away.GetOffensiveRating()
	return models.FactorResult{
		Name:           "pace_mismatch",
		Weight:         weightPace,
		Advantage:      advantageFromSign(controller),
		Impact:         clamp(abs(paceDiff), 0, 10),
		ProbAdjustment: clamp(sign(controller)*abs(paceDiff)*0.3, -1.5, 1.5),
		Insight: fmt.Sprintf("Pace gap of %.1f possessions favors the stronger offense (%s)",
			abs(paceDiff), sideLabel(advantageFromSign(controller), home, away)),
		DataSource:    "team_stats",
		DataAvailable: true,
	}
}

// restSchedule scores the rest differential and back-to-back spots
func (b *Bank) restSchedule(data *models.FactorData) models.FactorResult {
	if data == nil || data.Rest == nil {
		return models.NeutralFactor("rest_schedule", weightRestSchedule,
			"Rest and schedule data unavailable", "schedule")
	}

	rest := data.Rest
	score := float64(rest.HomeRestDays - rest.AwayRestDays)
	if rest.AwayBackToBack {
		score += 2
	}
	if rest.HomeBackToBack {
		score -= 2
	}

	insight := fmt.Sprintf("Rest edge: home %dd vs away %dd", rest.HomeRestDays, rest.AwayRestDays)
	if rest.AwayBackToBack {
		insight += ", away on a back-to-back"
	}
	if rest.HomeBackToBack {
		insight += ", home on a back-to-back"
	}

	return models.FactorResult{
		Name:           "rest_schedule",
		Weight:         weightRestSchedule,
		Advantage:      advantageFromSign(score),
		Impact:         clamp(abs(score)*2, 0, 10),
		ProbAdjustment: clamp(score*0.8, -3, 3),
		Insight:        insight,
		DataSource:     "schedule",
		DataAvailable:  true,
	}
}

// clutchRecord scores close-game performance (games decided by five or fewer)
func (b *Bank) clutchRecord(data *models.FactorData) models.FactorResult {
	if data == nil || data.Clutch == nil {
		return models.NeutralFactor("clutch_record", weightClutch,
			"Close-game records unavailable", "game_logs")
	}

	c := data.Clutch
	homeRate := models.CoverRate(c.HomeCloseWins, c.HomeCloseLosses)
	awayRate := models.CoverRate(c.AwayCloseWins, c.AwayCloseLosses)
	diff := homeRate - awayRate

	return models.FactorResult{
		Name:           "clutch_record",
		Weight:         weightClutch,
		Advantage:      advantageFromSign(diff),
		Impact:         clamp(abs(diff)*15, 0, 10),
		ProbAdjustment: clamp(diff*3, -1.5, 1.5),
		Insight: fmt.Sprintf("Clutch win rates: home %.0f%%, away %.0f%% in close games",
			homeRate*100, awayRate*100),
		DataSource:    "game_logs",
		DataAvailable: true,
	}
}

// quarterSplits scores second-half scoring margins, a proxy for depth and
// adjustments
func (b *Bank) quarterSplits(data *models.FactorData) models.FactorResult {
	if data == nil || data.QuarterSplits == nil {
		return models.NeutralFactor("quarter_splits", weightQuarterSplits,
			"Quarter scoring splits unavailable", "game_logs")
	}

	q := data.QuarterSplits
	diff := q.HomeSecondHalfMargin - q.AwaySecondHalfMargin

	return models.FactorResult{
		Name:           "quarter_splits",
		Weight:         weightQuarterSplits,
		Advantage:      advantageFromSign(diff),
		Impact:         clamp(abs(diff)*2, 0, 10),
		ProbAdjustment: clamp(diff*0.3, -1, 1),
		Insight: fmt.Sprintf("Second-half margin differential %+.1f (home %+.1f, away %+.1f)",
			diff, q.HomeSecondHalfMargin, q.AwaySecondHalfMargin),
		DataSource:    "game_logs",
		DataAvailable: true,
	}
}

// situational scores motivation and scheduling spots
func (b *Bank) situational(data *models.FactorData) models.FactorResult {
	if data == nil || data.Situational == nil {
		return models.NeutralFactor("situational", weightSituational,
			"No situational flags supplied", "situational")
	}

	s := data.Situational
	score := 0.0
	var notes []string
	if s.HomeRevengeGame {
		score += 1.5
		notes = append(notes, "home revenge spot")
	}
	if s.AwayRevengeGame {
		score -= 1.5
		notes = append(notes, "away revenge spot")
	}
	if s.HomePlayoffPush {
		score += 1.0
		notes = append(notes, "home in playoff push")
	}
	if s.AwayPlayoffPush {
		score -= 1.0
		notes = append(notes, "away in playoff push")
	}
	if s.AwayLongRoadTrip {
		score += 1.0
		notes = append(notes, "away deep into a road trip")
	}
	if s.HomeLetdownSpot {
		score -= 1.5
		notes = append(notes, "home in a letdown spot")
	}

	insight := "No notable situational angles"
	if len(notes) > 0 {
		insight = "Situational angles: " + joinNotes(notes)
	}

	return models.FactorResult{
		Name:           "situational",
		Weight:         weightSituational,
		Advantage:      advantageFromSign(score),
		Impact:         clamp(abs(score)*3, 0, 10),
		ProbAdjustment: clamp(score*0.8, -2.5, 2.5),
		Insight:        insight,
		DataSource:     "situational",
		DataAvailable:  true,
	}
}

// efficiencyDifferential scores net rating gap from the teams' own stats
func (b *Bank) efficiencyDifferential(game *models.Game) models.FactorResult {
	home, away := game.HomeTeam, game.AwayTeam
	if home == nil || away == nil || !home.HasEfficiencyStats() || !away.HasEfficiencyStats() {
		return models.NeutralFactor("efficiency_differential", weightEfficiency,
			"Advanced efficiency stats unavailable", "team_stats")
	}

	homeNet := home.GetOffensiveRating() - home.GetDefensiveRating()
	awayNet := away.GetOffensiveRating() - away.GetDefensiveRating()
	diff := homeNet - awayNet

	return models.FactorResult{
		Name:           "efficiency_differential",
		Weight:         weightEfficiency,
		Advantage:      advantageFromSign(diff),
		Impact:         clamp(abs(diff), 0, 10),
		ProbAdjustment: clamp(diff*0.4, -4, 4),
		Insight: fmt.Sprintf("Net rating: home %+.1f vs away %+.1f", homeNet, awayNet),
		DataSource:    "team_stats",
		DataAvailable: true,
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func sideLabel(side models.AdvantageSide, home, away *models.Team) string {
	switch side {
	case models.AdvantageHome:
		return home.Abbreviation
	case models.AdvantageAway:
		return away.Abbreviation
	default:
		return "neither side"
	}
}

func joinNotes(notes []string) string {
	out := ""
	for i, n := range notes {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
