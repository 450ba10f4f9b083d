package factors

import (
	"fmt"

	"github.com/yourusername/court-vision/internal/models"
)

// atsTrend scores the against-the-spread cover rates of both sides
func (b *Bank) atsTrend(data *models.FactorData) models.FactorResult {
	if data == nil || data.ATS == nil {
		return models.NeutralFactor("ats_trend", weightATSTrend,
			"Against-the-spread records unavailable", "betting_trends")
	}

	ats := data.ATS
	homeRate := models.CoverRate(ats.HomeCovers, ats.HomeFails)
	awayRate := models.CoverRate(ats.AwayCovers, ats.AwayFails)
	diff := homeRate - awayRate

	return models.FactorResult{
		Name:           "ats_trend",
		Weight:         weightATSTrend,
		Advantage:      advantageFromSign(diff),
		Impact:         clamp(abs(diff)*20, 0, 10),
		ProbAdjustment: clamp(diff*4, -2, 2),
		Insight: fmt.Sprintf("ATS cover rates: home %.0f%% (%d-%d), away %.0f%% (%d-%d)",
			homeRate*100, ats.HomeCovers, ats.HomeFails,
			awayRate*100, ats.AwayCovers, ats.AwayFails),
		DataSource:    "betting_trends",
		DataAvailable: true,
	}
}

// lineMovement scores where the spread has moved since open. Spreads are
// quoted from the home perspective, so a drop means money on the home side.
func (b *Bank) lineMovement(data *models.FactorData) models.FactorResult {
	if data == nil || data.LineMovement == nil {
		return models.NeutralFactor("line_movement", weightLineMovement,
			"Opening line unavailable, cannot assess movement", "line_history")
	}

	lm := data.LineMovement
	shift := lm.Shift()
	if abs(shift) < 0.5 {
		return models.FactorResult{
			Name:          "line_movement",
			Weight:        weightLineMovement,
			Advantage:     models.AdvantageNeutral,
			Insight:       fmt.Sprintf("Line steady near open (%.1f)", lm.CurrentSpread),
			DataSource:    "line_history",
			DataAvailable: true,
		}
	}

	return models.FactorResult{
		Name:           "line_movement",
		Weight:         weightLineMovement,
		Advantage:      advantageFromSign(-shift),
		Impact:         clamp(abs(shift)*2, 0, 10),
		ProbAdjustment: clamp(-shift*0.8, -2, 2),
		Insight: fmt.Sprintf("Line moved %+.1f since open (%.1f → %.1f)",
			shift, lm.OpeningSpread, lm.CurrentSpread),
		DataSource:    "line_history",
		DataAvailable: true,
	}
}

// publicBetting fades heavy public ticket skew
func (b *Bank) publicBetting(data *models.FactorData) models.FactorResult {
	if data == nil || data.PublicBetting == nil {
		return models.NeutralFactor("public_betting", weightPublicBetting,
			"Public betting splits unavailable", "betting_trends")
	}

	pb := data.PublicBetting
	skew := pb.HomeTicketPercent - 50.0
	if abs(skew) < 10 {
		return models.FactorResult{
			Name:          "public_betting",
			Weight:        weightPublicBetting,
			Advantage:     models.AdvantageNeutral,
			Insight:       "Public betting is roughly balanced",
			DataSource:    "betting_trends",
			DataAvailable: true,
		}
	}

	// Contrarian: a lopsided public leans the value to the other side
	return models.FactorResult{
		Name:           "public_betting",
		Weight:         weightPublicBetting,
		Advantage:      advantageFromSign(-skew),
		Impact:         clamp(abs(skew)/5, 0, 10),
		ProbAdjustment: clamp(-skew*0.04, -1.5, 1.5),
		Insight: fmt.Sprintf("%.0f%% of tickets on the home side, contrarian value on the other",
			pb.HomeTicketPercent),
		DataSource:    "betting_trends",
		DataAvailable: true,
	}
}

// refereeTendency scores the assigned crew chief's historical home win rate
// against the league baseline
func (b *Bank) refereeTendency(data *models.FactorData) models.FactorResult {
	if data == nil || data.Referee == nil {
		return models.NeutralFactor("referee_tendency", weightReferee,
			"Referee assignment unavailable", "referee_assignments")
	}

	// League home teams win about 54% of games
	const leagueHomeWinRate = 0.54
	ref := data.Referee
	lean := ref.HomeWinRate - leagueHomeWinRate

	return models.FactorResult{
		Name:           "referee_tendency",
		Weight:         weightReferee,
		Advantage:      advantageFromSign(lean),
		Impact:         clamp(abs(lean)*50, 0, 10),
		ProbAdjustment: clamp(lean*10, -1.5, 1.5),
		Insight: fmt.Sprintf("Crew chief %s: home teams win %.0f%% with this crew",
			ref.Name, ref.HomeWinRate*100),
		DataSource:    "referee_assignments",
		DataAvailable: true,
	}
}

// newsSentiment scores recent news coverage mentioning either team
func (b *Bank) newsSentiment(game *models.Game, news []models.NewsArticle) models.FactorResult {
	if game.HomeTeam == nil || game.AwayTeam == nil {
		return models.NeutralFactor("news_sentiment", weightNewsSentiment,
			"Teams missing, cannot match news", "news")
	}

	home := game.HomeTeam.Abbreviation
	away := game.AwayTeam.Abbreviation
	homeScore, awayScore := 0.0, 0.0
	matched := 0
	for i := range news {
		article := &news[i]
		weighted := article.Sentiment * article.Impact
		if article.Mentions(home) {
			homeScore += weighted
			matched++
		}
		if article.Mentions(away) {
			awayScore += weighted
			matched++
		}
	}

	if matched == 0 {
		return models.NeutralFactor("news_sentiment", weightNewsSentiment,
			"No recent news mentioning either team", "news")
	}

	diff := homeScore - awayScore
	return models.FactorResult{
		Name:           "news_sentiment",
		Weight:         weightNewsSentiment,
		Advantage:      advantageFromSign(diff),
		Impact:         clamp(abs(diff), 0, 10),
		ProbAdjustment: clamp(diff*0.3, -2, 2),
		Insight: fmt.Sprintf("News sentiment lean %+.1f across %d matched articles", diff, matched),
		DataSource:    "news",
		DataAvailable: true,
	}
}
