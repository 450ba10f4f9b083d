package backtest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func testHarness() *Harness {
	engineCfg := config.DefaultEngineConfig()
	engineCfg.Simulation.Iterations = 2000
	return NewHarness(config.BacktestConfig{
		InitialBankroll: 10000,
		UnitSize:        100,
	}, &engineCfg, nil)
}

// historicalGame builds a lopsided matchup where the market badly underprices
// the home side, so the pipeline reliably recommends home
func historicalGame(tipoff time.Time, finalHome, finalAway int) *models.AnalysisInput {
	return &models.AnalysisInput{
		Game: &models.Game{
			ID: uuid.New(),
			HomeTeam: &models.Team{
				Abbreviation:    "DEN",
				Name:            "Denver Nuggets",
				Record:          models.TeamRecord{Wins: 45, Losses: 10},
				Pace:            floatPtr(99.0),
				OffensiveRating: floatPtr(121.0),
				DefensiveRating: floatPtr(109.0),
			},
			AwayTeam: &models.Team{
				Abbreviation:    "POR",
				Name:            "Portland Trail Blazers",
				Record:          models.TeamRecord{Wins: 12, Losses: 43},
				Pace:            floatPtr(100.5),
				OffensiveRating: floatPtr(106.0),
				DefensiveRating: floatPtr(118.0),
			},
			Tipoff: tipoff,
			Odds: []models.BookOdds{
				{Bookmaker: "draftkings", HomeMoneyline: 200, AwayMoneyline: -250, HomeSpread: -5.5, FetchedAt: tipoff},
			},
			FinalScore: &models.FinalScore{Home: finalHome, Away: finalAway},
		},
		Factors: &models.FactorData{
			HeadToHead:    &models.HeadToHeadRecord{HomeWins: 4, AwayWins: 0, AverageMargin: 12},
			Rest:          &models.RestProfile{HomeRestDays: 3, AwayRestDays: 1, AwayBackToBack: true},
			Clutch:        &models.ClutchRecord{HomeCloseWins: 9, HomeCloseLosses: 2, AwayCloseWins: 3, AwayCloseLosses: 9},
			QuarterSplits: &models.QuarterSplits{HomeSecondHalfMargin: 3.1, AwaySecondHalfMargin: -2.5},
			ATS:           &models.ATSRecord{HomeCovers: 16, HomeFails: 7, AwayCovers: 8, AwayFails: 15},
			LineMovement:  &models.LineMovement{OpeningSpread: -4.0, CurrentSpread: -5.5},
			PublicBetting: &models.PublicBetting{HomeTicketPercent: 55, HomeMoneyPercent: 58},
			Situational:   &models.SituationalFlags{HomeRevengeGame: true},
			Referee:       &models.RefereeProfile{Name: "S. Foster", AvgTotal: 221, HomeWinRate: 0.58},
		},
	}
}

func TestHomeCoveredSpreadMath(t *testing.T) {
	// 34 + (-9.5) = 24.5 > 10
	assert.True(t, HomeCovered(34, 10, -9.5))
	assert.False(t, HomeCovered(100, 110, -3.5))
	assert.True(t, HomeCovered(100, 104, 4.5))
	assert.False(t, HomeCovered(100, 105, 4.5))
}

func TestRunGradesWin(t *testing.T) {
	h := testHarness()
	tipoff := time.Date(2025, 1, 10, 19, 0, 0, 0, time.UTC)

	summary, err := h.Run([]*models.AnalysisInput{historicalGame(tipoff, 121, 98)})
	require.NoError(t, err)

	require.Equal(t, 1, summary.TotalGames)
	require.Equal(t, 1, summary.TotalBets)
	assert.Equal(t, 1, summary.Wins)
	assert.Equal(t, 0, summary.Losses)
	assert.Equal(t, 1.0, summary.WinRate)

	grade := summary.Grades[0]
	assert.Equal(t, models.ActionStrongBet, grade.Action)
	assert.Equal(t, "DEN", grade.Side)
	assert.Equal(t, 3.0, grade.Units)
	assert.Equal(t, OutcomeWin, grade.Outcome)
	assert.True(t, grade.HomeCovered)

	// 3 units at 100/unit, won at +200: profit 600
	assert.True(t, grade.Profit.Equal(decimal.NewFromInt(600)), grade.Profit.String())
	assert.True(t, summary.EndingBankroll.Equal(decimal.NewFromInt(10600)), summary.EndingBankroll.String())
}

func TestRunGradesLoss(t *testing.T) {
	h := testHarness()
	tipoff := time.Date(2025, 1, 10, 19, 0, 0, 0, time.UTC)

	summary, err := h.Run([]*models.AnalysisInput{historicalGame(tipoff, 95, 108)})
	require.NoError(t, err)

	require.Equal(t, 1, summary.TotalBets)
	assert.Equal(t, 0, summary.Wins)
	assert.Equal(t, 1, summary.Losses)
	assert.Equal(t, 0.0, summary.WinRate)

	grade := summary.Grades[0]
	assert.Equal(t, OutcomeLoss, grade.Outcome)
	assert.False(t, grade.HomeCovered)
	assert.True(t, grade.Profit.Equal(decimal.NewFromInt(-300)), grade.Profit.String())
	assert.True(t, summary.EndingBankroll.Equal(decimal.NewFromInt(9700)), summary.EndingBankroll.String())
}

func TestRunSkipsGamesWithoutFinalScore(t *testing.T) {
	h := testHarness()
	tipoff := time.Date(2025, 1, 10, 19, 0, 0, 0, time.UTC)

	ungraded := historicalGame(tipoff.Add(24*time.Hour), 0, 0)
	ungraded.Game.FinalScore = nil

	summary, err := h.Run([]*models.AnalysisInput{
		historicalGame(tipoff, 121, 98),
		ungraded,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalGames)
}

func TestRunUpdatesRatingsChronologically(t *testing.T) {
	h := testHarness()
	tipoff := time.Date(2025, 1, 10, 19, 0, 0, 0, time.UTC)

	// Supplied out of order; the harness must replay by tipoff
	_, err := h.Run([]*models.AnalysisInput{
		historicalGame(tipoff.Add(48*time.Hour), 110, 100),
		historicalGame(tipoff, 121, 98),
	})
	require.NoError(t, err)

	den, err := h.Table().Get("DEN")
	require.NoError(t, err)
	assert.Equal(t, 2, den.GamesPlayed)
	assert.Equal(t, 2, den.Wins)
	assert.Greater(t, den.Rating, 1500.0)

	por, err := h.Table().Get("POR")
	require.NoError(t, err)
	assert.Equal(t, 2, por.Losses)
	assert.Less(t, por.Rating, 1500.0)
}

func TestRunRequiresGames(t *testing.T) {
	_, err := testHarness().Run(nil)
	assert.Error(t, err)
}

func TestRunDeterministic(t *testing.T) {
	tipoff := time.Date(2025, 1, 10, 19, 0, 0, 0, time.UTC)
	input := historicalGame(tipoff, 121, 98)

	first, err := testHarness().Run([]*models.AnalysisInput{input})
	require.NoError(t, err)
	second, err := testHarness().Run([]*models.AnalysisInput{input})
	require.NoError(t, err)

	assert.Equal(t, first.Wins, second.Wins)
	assert.True(t, first.EndingBankroll.Equal(second.EndingBankroll))
	assert.Equal(t, first.Grades[0].Confidence, second.Grades[0].Confidence)
}
