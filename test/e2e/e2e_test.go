//go:build e2e

package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/court-vision/internal/backtest"
	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/feed"
	"github.com/yourusername/court-vision/internal/models"
	"github.com/yourusername/court-vision/internal/repository"
	"github.com/yourusername/court-vision/internal/scheduler"
	"github.com/yourusername/court-vision/internal/service"
	"github.com/yourusername/court-vision/test/helpers"
)

const (
	skipE2E   = "Skipping E2E test in short mode"
	slateDate = "2026-01-15"
)

// memoryJournal is an in-memory stand-in for the PostgreSQL rating journal.
type memoryJournal struct {
	entries []repository.JournalEntry
}

func (j *memoryJournal) Append(_ context.Context, entry repository.JournalEntry) error {
	j.entries = append(j.entries, entry)
	return nil
}

func (j *memoryJournal) LoadRecords(context.Context) ([]models.EloRecord, error) {
	byTeam := make(map[string]*models.EloRecord)
	order := []string{}
	for _, entry := range j.entries {
		record, ok := byTeam[entry.Team]
		if !ok {
			record = &models.EloRecord{Team: entry.Team}
			byTeam[entry.Team] = record
			order = append(order, entry.Team)
		}
		record.Rating = entry.NewRating
		record.GamesPlayed++
		if entry.Won {
			record.Wins++
		} else {
			record.Losses++
		}
		record.History = append(record.History, models.EloHistoryEntry{
			Date:      entry.GameDate,
			NewRating: entry.NewRating,
			Delta:     entry.Delta,
			Opponent:  entry.Opponent,
			Won:       entry.Won,
		})
	}

	records := make([]models.EloRecord, 0, len(byTeam))
	for _, team := range order {
		records = append(records, *byTeam[team])
	}
	return records, nil
}

func e2eConfig(bundleDir string) *config.Config {
	engineCfg := config.DefaultEngineConfig()
	engineCfg.Simulation.Iterations = 2000
	return &config.Config{
		App:    config.AppConfig{Name: "court-vision", Environment: "development", LogLevel: "error"},
		Engine: engineCfg,
		Scheduler: config.SchedulerConfig{
			Enabled:        true,
			SlateCron:      "0 12 * * *",
			SlateBundleDir: bundleDir,
		},
		Backtest: config.BacktestConfig{InitialBankroll: 10000, UnitSize: 100},
	}
}

func upcomingSlate() *feed.Slate {
	favorite := helpers.TeamWithStats("DEN", "Denver Nuggets", 45, 10, 99.0, 121.0, 109.0)
	underdog := helpers.TeamWithStats("POR", "Portland Trail Blazers", 12, 43, 100.5, 106.0, 118.0)

	mismatch := helpers.WithOdds(helpers.GameBetween(favorite, underdog), "draftkings", 200, -250, -5.5)
	tossup := helpers.WithOdds(
		helpers.GameBetween(
			helpers.TeamWithStats("BOS", "Boston Celtics", 30, 20, 98.5, 115.0, 111.0),
			helpers.TeamWithStats("NYK", "New York Knicks", 29, 21, 97.0, 114.0, 111.5),
		),
		"fanduel", -110, -110, -1.5,
	)

	return &feed.Slate{
		Date: slateDate,
		Games: []*models.AnalysisInput{
			{Game: mismatch, Factors: helpers.HomeLeaningFactorData()},
			{Game: tossup},
		},
	}
}

// TestCompleteWorkflow validates the full pipeline: slate ingestion, analysis,
// result recording, journal restore, backtesting, and the scheduler.
func TestCompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip(skipE2E)
	}

	ctx := context.Background()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	bundleDir := t.TempDir()
	cfg := e2eConfig(bundleDir)

	// Fetch the slate through the feed client against a mock server
	slate := upcomingSlate()
	server := helpers.MockFeedServer(t, map[string]*feed.Slate{slateDate: slate})

	feedCfg := cfg.Feed
	feedCfg.BaseURL = server.URL
	feedClient := feed.NewClient(feedCfg, logger)
	defer feedClient.Close()

	fetched, err := feedClient.FetchSlate(ctx, slateDate)
	require.NoError(t, err)
	require.Len(t, fetched.Games, 2)

	// Analyze the slate
	journal := &memoryJournal{}
	analysisService := service.NewAnalysisService(cfg, journal, logger)
	require.NoError(t, analysisService.Restore(ctx))

	results := analysisService.AnalyzeSlate(fetched.Games)
	require.Len(t, results, 2)

	for _, result := range results {
		require.False(t, result.IsStub(), "analysis failed: %s", result.Error)
		assert.InDelta(t, 1.0, result.HomeWinProbability+result.AwayWinProbability, 1e-9)
		assert.Len(t, result.Factors, 12)
		assert.NotEmpty(t, result.Recommendation.Action)
	}

	// The heavy mismatch with a home-leaning factor bundle and a generous
	// home price is an actionable edge
	mismatchResult := results[0]
	assert.Equal(t, models.ActionStrongBet, mismatchResult.Recommendation.Action)
	assert.Equal(t, "DEN", mismatchResult.Recommendation.Side)
	assert.Greater(t, mismatchResult.Recommendation.Units, 0.0)

	// Record final scores and verify the journal captured both sides
	for _, input := range fetched.Games {
		input.Game.FinalScore = &models.FinalScore{Home: 112, Away: 101}
		require.NoError(t, analysisService.RecordResult(ctx, input.Game))
	}
	assert.Len(t, journal.entries, 4)

	rankings := analysisService.Rankings()
	require.Len(t, rankings, 4)
	assert.Equal(t, 1, rankings[0].Rank)
	assert.Greater(t, rankings[0].Rating, rankings[len(rankings)-1].Rating)

	// A fresh service restores the same state from the journal
	restored := service.NewAnalysisService(cfg, journal, logger)
	require.NoError(t, restored.Restore(ctx))
	for _, ranking := range rankings {
		record, err := restored.Table().Get(ranking.Team)
		require.NoError(t, err)
		assert.InDelta(t, ranking.Rating, record.Rating, 1e-9)
	}

	// Backtest over a historical bundle written to disk
	historical := &feed.Slate{Date: "2025-12-01"}
	for i := 0; i < 3; i++ {
		game := helpers.WithFinalScore(
			helpers.WithOdds(
				helpers.GameBetween(
					helpers.TeamWithStats("DEN", "Denver Nuggets", 45, 10, 99.0, 121.0, 109.0),
					helpers.TeamWithStats("POR", "Portland Trail Blazers", 12, 43, 100.5, 106.0, 118.0),
				),
				"draftkings", 200, -250, -5.5,
			),
			118, 95,
		)
		game.Tipoff = time.Date(2025, 12, 1+i, 19, 0, 0, 0, time.UTC)
		historical.Games = append(historical.Games, &models.AnalysisInput{
			Game:    game,
			Factors: helpers.HomeLeaningFactorData(),
		})
	}
	bundlePath := helpers.WriteSlateFixture(t, bundleDir, historical.Date, historical)

	loaded, err := feed.LoadSlateFile(bundlePath)
	require.NoError(t, err)

	harness := backtest.NewHarness(cfg.Backtest, &cfg.Engine, logger)
	summary, err := harness.Run(loaded.Games)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalGames)
	assert.Greater(t, summary.TotalBets, 0)
	assert.Equal(t, summary.Wins, summary.TotalBets, "home favorite covered every game")
	assert.True(t, summary.EndingBankroll.GreaterThan(summary.StartingBankroll))

	// Scheduler lifecycle against the local bundle directory
	sched := scheduler.NewScheduler(analysisService, nil, cfg.Scheduler, logger)
	require.NoError(t, sched.ScheduleSlateAnalysis(cfg.Scheduler.SlateCron))
	require.NoError(t, sched.Start())
	assert.True(t, sched.IsRunning())
	assert.False(t, sched.GetNextRun().IsZero())
	require.NoError(t, sched.Stop())
	assert.False(t, sched.IsRunning())
}
