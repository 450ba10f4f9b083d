package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/models"
	"github.com/yourusername/court-vision/internal/rating"
)

func floatPtr(v float64) *float64 { return &v }

func newTestAnalyzer() *Analyzer {
	cfg := config.DefaultEngineConfig()
	cfg.Simulation.Iterations = 2000
	table := rating.NewTable(cfg.Elo, nil)
	return New(&cfg, table, nil)
}

func analyzerGame() *models.Game {
	return &models.Game{
		ID: uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		HomeTeam: &models.Team{
			Abbreviation:    "BOS",
			Name:            "Boston Celtics",
			Record:          models.TeamRecord{Wins: 40, Losses: 12},
			Pace:            floatPtr(98.5),
			OffensiveRating: floatPtr(119.0),
			DefensiveRating: floatPtr(110.5),
		},
		AwayTeam: &models.Team{
			Abbreviation:    "CHA",
			Name:            "Charlotte Hornets",
			Record:          models.TeamRecord{Wins: 15, Losses: 37},
			Pace:            floatPtr(99.8),
			OffensiveRating: floatPtr(108.0),
			DefensiveRating: floatPtr(116.5),
		},
		Tipoff: time.Date(2025, 2, 1, 19, 0, 0, 0, time.UTC),
		Odds: []models.BookOdds{
			{Bookmaker: "draftkings", HomeMoneyline: -320, AwayMoneyline: 260, FetchedAt: time.Now()},
			{Bookmaker: "fanduel", HomeMoneyline: -310, AwayMoneyline: 270, FetchedAt: time.Now()},
		},
	}
}

func TestTeamStrengthFromSeededRatings(t *testing.T) {
	a := newTestAnalyzer()
	a.table.Seed(models.EloRecord{Team: "BOS", Rating: 1600})
	a.table.Seed(models.EloRecord{Team: "CHA", Rating: 1500})

	game := analyzerGame()
	h := a.computeHeuristics(game, nil, nil)

	// 100-point gap plus the 100-point home offset: 1/(1+10^-0.5)
	assert.InDelta(t, 0.7597, h.TeamStrength, 0.001)
}

func TestTeamStrengthFallsBackToRecords(t *testing.T) {
	a := newTestAnalyzer()
	game := analyzerGame()
	h := a.computeHeuristics(game, nil, nil)

	// 0.769 vs 0.288 win percentage, scaled and clamped
	assert.Greater(t, h.TeamStrength, 0.5)
	assert.LessOrEqual(t, h.TeamStrength, 0.75)
}

func TestInjuryDifferentialFavorsHealthierSide(t *testing.T) {
	injuries := models.InjuryMap{
		"CHA": {
			{Player: "L. Ball", Status: "out"},
			{Player: "M. Williams", Status: "doubtful"},
		},
	}
	a := newTestAnalyzer()
	h := a.computeHeuristics(analyzerGame(), injuries, nil)
	assert.Greater(t, h.Injury, 0.5)

	h = a.computeHeuristics(analyzerGame(), nil, nil)
	assert.Equal(t, 0.5, h.Injury)
}

func TestSituationalValueDefaultsToHomeCourt(t *testing.T) {
	a := newTestAnalyzer()
	h := a.computeHeuristics(analyzerGame(), nil, nil)
	assert.Equal(t, homeCourtBase, h.Situational)

	data := &models.FactorData{
		Situational: &models.SituationalFlags{HomeRevengeGame: true, AwayLongRoadTrip: true},
	}
	h = a.computeHeuristics(analyzerGame(), nil, data)
	assert.InDelta(t, homeCourtBase+2*situationalStep, h.Situational, 1e-12)
}

func TestAnalyzeCompleteResult(t *testing.T) {
	a := newTestAnalyzer()
	result, err := a.Analyze(&models.AnalysisInput{Game: analyzerGame()})
	require.NoError(t, err)

	assert.Equal(t, "BOS", result.HomeTeam)
	assert.Equal(t, "CHA", result.AwayTeam)
	assert.GreaterOrEqual(t, result.HomeWinProbability, 0.05)
	assert.LessOrEqual(t, result.HomeWinProbability, 0.95)
	assert.InDelta(t, 1.0, result.HomeWinProbability+result.AwayWinProbability, 1e-9)
	assert.GreaterOrEqual(t, result.Confidence, 10.0)
	assert.LessOrEqual(t, result.Confidence, 95.0)
	assert.Len(t, result.Factors, 12)
	assert.NotEmpty(t, result.Reasoning)
	assert.False(t, result.IsStub())

	// Best price per side across both books
	assert.InDelta(t, 310.0/410.0, result.MarketImplied.Home, 1e-9)
	assert.InDelta(t, 100.0/370.0, result.MarketImplied.Away, 1e-9)
}

func TestAnalyzeDeterministicPerGame(t *testing.T) {
	a := newTestAnalyzer()
	first, err := a.Analyze(&models.AnalysisInput{Game: analyzerGame()})
	require.NoError(t, err)
	second, err := a.Analyze(&models.AnalysisInput{Game: analyzerGame()})
	require.NoError(t, err)

	assert.Equal(t, first.HomeWinProbability, second.HomeWinProbability)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.Recommendation.Action, second.Recommendation.Action)
}

func TestAnalyzeRejectsMissingTeams(t *testing.T) {
	a := newTestAnalyzer()

	_, err := a.Analyze(nil)
	assert.ErrorIs(t, err, models.ErrMissingTeams)

	game := analyzerGame()
	game.AwayTeam = nil
	_, err = a.Analyze(&models.AnalysisInput{Game: game})
	assert.ErrorIs(t, err, models.ErrMissingTeams)
}

func TestAnalyzeBatchIsolatesFailures(t *testing.T) {
	a := newTestAnalyzer()
	broken := analyzerGame()
	broken.HomeTeam = nil

	results := a.AnalyzeBatch([]*models.AnalysisInput{
		{Game: analyzerGame()},
		{Game: broken},
		{Game: analyzerGame()},
	})

	require.Len(t, results, 3)
	assert.False(t, results[0].IsStub())
	assert.True(t, results[1].IsStub())
	assert.Equal(t, models.ActionPass, results[1].Recommendation.Action)
	assert.NotEmpty(t, results[1].Error)
	assert.False(t, results[2].IsStub())
}

func TestAnalyzeNoMarketStillCompletes(t *testing.T) {
	a := newTestAnalyzer()
	game := analyzerGame()
	game.Odds = nil

	result, err := a.Analyze(&models.AnalysisInput{Game: game})
	require.NoError(t, err)
	assert.Equal(t, models.ActionPass, result.Recommendation.Action)
	assert.Zero(t, result.MarketImplied.Home)
	assert.Contains(t, result.Risks, "No market odds supplied, edge and recommendation unavailable")
}

func TestSparseFactorDataFlaggedAsRisk(t *testing.T) {
	a := newTestAnalyzer()
	game := analyzerGame()
	game.HomeTeam.Pace = nil
	game.HomeTeam.OffensiveRating = nil
	game.HomeTeam.DefensiveRating = nil

	result, err := a.Analyze(&models.AnalysisInput{Game: game})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Risks)
	assert.Contains(t, result.Risks[0], "factors had real data")
}
