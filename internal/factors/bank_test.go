package factors

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/models"
)

func newTestBank() *Bank {
	return NewBank(config.DefaultEngineConfig().Recommendation, nil)
}

func floatPtr(v float64) *float64 { return &v }

func testGame() *models.Game {
	return &models.Game{
		ID: uuid.New(),
		HomeTeam: &models.Team{
			Abbreviation:    "BOS",
			Name:            "Boston Celtics",
			Record:          models.TeamRecord{Wins: 40, Losses: 12},
			Pace:            floatPtr(98.5),
			OffensiveRating: floatPtr(119.0),
			DefensiveRating: floatPtr(110.5),
		},
		AwayTeam: &models.Team{
			Abbreviation:    "LAL",
			Name:            "Los Angeles Lakers",
			Record:          models.TeamRecord{Wins: 28, Losses: 24},
			Pace:            floatPtr(101.2),
			OffensiveRating: floatPtr(114.0),
			DefensiveRating: floatPtr(113.0),
		},
		Tipoff: time.Date(2025, 1, 15, 19, 30, 0, 0, time.UTC),
	}
}

func TestEvaluateAllFactorsNeutralWithoutData(t *testing.T) {
	bank := newTestBank()
	game := testGame()
	// Strip efficiency stats so team-derived factors degrade too
	game.HomeTeam.Pace = nil
	game.HomeTeam.OffensiveRating = nil
	game.HomeTeam.DefensiveRating = nil

	agg := bank.Evaluate(game, nil, nil)

	require.Len(t, agg.Results, 12)
	for _, r := range agg.Results {
		assert.Equal(t, models.AdvantageNeutral, r.Advantage, r.Name)
		assert.Zero(t, r.Impact, r.Name)
		assert.Zero(t, r.ProbAdjustment, r.Name)
		assert.False(t, r.DataAvailable, r.Name)
		assert.NotEmpty(t, r.Insight, r.Name)
	}
	assert.Equal(t, models.AdvantageNeutral, agg.OverallAdvantage)
	assert.Zero(t, agg.TotalProbAdjustment)
	assert.Zero(t, agg.DataAvailableCount)
	assert.False(t, agg.ReverseLineMovement)
}

func fullFactorData() *models.FactorData {
	return &models.FactorData{
		HeadToHead:    &models.HeadToHeadRecord{HomeWins: 4, AwayWins: 1, AverageMargin: 6.5},
		Rest:          &models.RestProfile{HomeRestDays: 3, AwayRestDays: 1, AwayBackToBack: true},
		Clutch:        &models.ClutchRecord{HomeCloseWins: 8, HomeCloseLosses: 3, AwayCloseWins: 4, AwayCloseLosses: 7},
		QuarterSplits: &models.QuarterSplits{HomeSecondHalfMargin: 2.4, AwaySecondHalfMargin: -1.2},
		ATS:           &models.ATSRecord{HomeCovers: 15, HomeFails: 8, AwayCovers: 9, AwayFails: 13},
		LineMovement:  &models.LineMovement{OpeningSpread: -4.5, CurrentSpread: -6.0, Variance: 0.4},
		PublicBetting: &models.PublicBetting{HomeTicketPercent: 72, HomeMoneyPercent: 64},
		Situational:   &models.SituationalFlags{HomeRevengeGame: true, AwayLongRoadTrip: true},
		Referee:       &models.RefereeProfile{Name: "T. Brothers", AvgTotal: 224.5, HomeWinRate: 0.61},
	}
}

func TestEvaluateFullDataCountsAndAdjustment(t *testing.T) {
	bank := newTestBank()
	game := testGame()

	news := []models.NewsArticle{
		{Headline: "Star returns for Boston", Teams: []string{"BOS"}, Sentiment: 0.8, Impact: 6},
		{Headline: "Lakers drop rotation piece", Teams: []string{"LAL"}, Sentiment: -0.5, Impact: 4},
	}

	agg := bank.Evaluate(game, fullFactorData(), news)

	require.Len(t, agg.Results, 12)
	assert.Equal(t, 12, agg.DataAvailableCount)

	// Aggregate adjustment equals the sum of the per-factor adjustments
	sum := 0.0
	for _, r := range agg.Results {
		sum += r.ProbAdjustment
	}
	assert.InDelta(t, sum, agg.TotalProbAdjustment, 1e-9)

	// This slate leans heavily home: rest, h2h, clutch, ats, efficiency,
	// line movement, referee, situational, news all favor BOS
	assert.Equal(t, models.AdvantageHome, agg.OverallAdvantage)
	assert.Greater(t, agg.HomeCount, agg.AwayCount+2)
}

func TestAdvantageMarginTieBreak(t *testing.T) {
	bank := newTestBank()
	game := testGame()

	// Only clutch favors home; everything else neutral → inside the margin
	data := &models.FactorData{
		Clutch: &models.ClutchRecord{HomeCloseWins: 9, HomeCloseLosses: 2, AwayCloseWins: 3, AwayCloseLosses: 8},
	}
	game.HomeTeam.Pace = nil
	game.HomeTeam.OffensiveRating = nil
	game.HomeTeam.DefensiveRating = nil

	agg := bank.Evaluate(game, data, nil)
	assert.Equal(t, models.AdvantageNeutral, agg.OverallAdvantage)
	assert.Equal(t, 1, agg.HomeCount)
}

func TestKeyInsightsThreshold(t *testing.T) {
	bank := newTestBank()
	agg := bank.Evaluate(testGame(), fullFactorData(), nil)

	require.NotEmpty(t, agg.KeyInsights)
	for _, insight := range agg.KeyInsights {
		assert.Greater(t, insight.Impact, bank.cfg.KeyInsightThreshold)
	}
}

func TestReverseLineMovementDetection(t *testing.T) {
	tests := []struct {
		name     string
		movement *models.LineMovement
		public   *models.PublicBetting
		expected bool
	}{
		{
			"public home line away",
			&models.LineMovement{OpeningSpread: -6.0, CurrentSpread: -4.5},
			&models.PublicBetting{HomeTicketPercent: 70},
			true,
		},
		{
			"public away line home",
			&models.LineMovement{OpeningSpread: -4.5, CurrentSpread: -6.0},
			&models.PublicBetting{HomeTicketPercent: 30},
			true,
		},
		{
			"public and line agree",
			&models.LineMovement{OpeningSpread: -4.5, CurrentSpread: -6.0},
			&models.PublicBetting{HomeTicketPercent: 70},
			false,
		},
		{
			"missing public data",
			&models.LineMovement{OpeningSpread: -6.0, CurrentSpread: -4.5},
			nil,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := &models.FactorData{LineMovement: tt.movement, PublicBetting: tt.public}
			assert.Equal(t, tt.expected, detectReverseLineMovement(data))
		})
	}
}

func TestHeadToHeadLeansWinner(t *testing.T) {
	bank := newTestBank()
	r := bank.headToHead(&models.FactorData{
		HeadToHead: &models.HeadToHeadRecord{HomeWins: 1, AwayWins: 5, AverageMargin: -4.0},
	})
	assert.Equal(t, models.AdvantageAway, r.Advantage)
	assert.Negative(t, r.ProbAdjustment)
	assert.True(t, r.DataAvailable)
}

func TestLineMovementSteadyLineIsNeutral(t *testing.T) {
	bank := newTestBank()
	r := bank.lineMovement(&models.FactorData{
		LineMovement: &models.LineMovement{OpeningSpread: -5.0, CurrentSpread: -5.0},
	})
	assert.Equal(t, models.AdvantageNeutral, r.Advantage)
	assert.True(t, r.DataAvailable)
}

func TestPublicBettingContrarian(t *testing.T) {
	bank := newTestBank()
	r := bank.publicBetting(&models.FactorData{
		PublicBetting: &models.PublicBetting{HomeTicketPercent: 75},
	})
	assert.Equal(t, models.AdvantageAway, r.Advantage)

	r = bank.publicBetting(&models.FactorData{
		PublicBetting: &models.PublicBetting{HomeTicketPercent: 52},
	})
	assert.Equal(t, models.AdvantageNeutral, r.Advantage)
}

func TestRestScheduleBackToBackPenalty(t *testing.T) {
	bank := newTestBank()
	r := bank.restSchedule(&models.FactorData{
		Rest: &models.RestProfile{HomeRestDays: 1, AwayRestDays: 1, HomeBackToBack: true},
	})
	assert.Equal(t, models.AdvantageAway, r.Advantage)
	assert.Contains(t, r.Insight, "home on a back-to-back")
}

func TestEfficiencyDifferentialFromTeamStats(t *testing.T) {
	bank := newTestBank()
	r := bank.efficiencyDifferential(testGame())

	// BOS net +8.5 vs LAL net +1.0
	assert.Equal(t, models.AdvantageHome, r.Advantage)
	assert.InDelta(t, 7.5, r.Impact, 1e-9)
	assert.InDelta(t, 3.0, r.ProbAdjustment, 1e-9)
}

func TestNewsSentimentNoMatchesIsNeutral(t *testing.T) {
	bank := newTestBank()
	news := []models.NewsArticle{
		{Headline: "Unrelated trade rumor", Teams: []string{"PHX"}, Sentiment: -0.9, Impact: 8},
	}
	r := bank.newsSentiment(testGame(), news)
	assert.Equal(t, models.AdvantageNeutral, r.Advantage)
	assert.False(t, r.DataAvailable)
}
