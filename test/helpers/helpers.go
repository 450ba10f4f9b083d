// Package helpers provides shared builders and fakes for integration and
// end-to-end tests.
package helpers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/court-vision/internal/feed"
	"github.com/yourusername/court-vision/internal/models"
)

// TeamWithStats builds a team with real efficiency numbers attached.
func TeamWithStats(abbreviation, name string, wins, losses int, pace, offRtg, defRtg float64) *models.Team {
	return &models.Team{
		Abbreviation:    abbreviation,
		Name:            name,
		Record:          models.TeamRecord{Wins: wins, Losses: losses},
		Pace:            &pace,
		OffensiveRating: &offRtg,
		DefensiveRating: &defRtg,
	}
}

// TeamWithRecord builds a team with a record but no efficiency stats, which
// forces the league-average fallbacks downstream.
func TeamWithRecord(abbreviation, name string, wins, losses int) *models.Team {
	return &models.Team{
		Abbreviation: abbreviation,
		Name:         name,
		Record:       models.TeamRecord{Wins: wins, Losses: losses},
	}
}

// GameBetween builds a game with a fresh ID tipping off tomorrow.
func GameBetween(home, away *models.Team) *models.Game {
	return &models.Game{
		ID:       uuid.New(),
		HomeTeam: home,
		AwayTeam: away,
		Tipoff:   time.Now().Add(24 * time.Hour),
	}
}

// WithOdds attaches a single bookmaker line to a game.
func WithOdds(game *models.Game, bookmaker string, homeML, awayML int, homeSpread float64) *models.Game {
	game.Odds = append(game.Odds, models.BookOdds{
		Bookmaker:     bookmaker,
		HomeMoneyline: homeML,
		AwayMoneyline: awayML,
		HomeSpread:    homeSpread,
		FetchedAt:     time.Now(),
	})
	return game
}

// WithFinalScore marks a game as completed, for backtest inputs.
func WithFinalScore(game *models.Game, home, away int) *models.Game {
	game.FinalScore = &models.FinalScore{Home: home, Away: away}
	game.Tipoff = time.Now().Add(-24 * time.Hour)
	return game
}

// HomeLeaningFactorData builds a full sub-data bundle where every factor
// favors the home side. Useful when a test needs an actionable recommendation.
func HomeLeaningFactorData() *models.FactorData {
	return &models.FactorData{
		HeadToHead:    &models.HeadToHeadRecord{HomeWins: 4, AwayWins: 0, AverageMargin: 12},
		Rest:          &models.RestProfile{HomeRestDays: 3, AwayRestDays: 1, AwayBackToBack: true},
		Clutch:        &models.ClutchRecord{HomeCloseWins: 9, HomeCloseLosses: 2, AwayCloseWins: 3, AwayCloseLosses: 9},
		QuarterSplits: &models.QuarterSplits{HomeSecondHalfMargin: 3.1, AwaySecondHalfMargin: -2.5},
		ATS:           &models.ATSRecord{HomeCovers: 16, HomeFails: 7, AwayCovers: 8, AwayFails: 15},
		LineMovement:  &models.LineMovement{OpeningSpread: -4.0, CurrentSpread: -5.5},
		PublicBetting: &models.PublicBetting{HomeTicketPercent: 55, HomeMoneyPercent: 58},
		Situational:   &models.SituationalFlags{HomeRevengeGame: true},
		Referee:       &models.RefereeProfile{Name: "S. Foster", AvgTotal: 221, HomeWinRate: 0.58},
	}
}

// WriteSlateFixture writes a slate bundle to dir as {date}.json and returns
// the file path.
func WriteSlateFixture(t *testing.T, dir, date string, slate *feed.Slate) string {
	t.Helper()

	data, err := json.Marshal(slate)
	require.NoError(t, err, "failed to marshal slate fixture")

	path := filepath.Join(dir, date+".json")
	require.NoError(t, os.WriteFile(path, data, 0o644), "failed to write slate fixture")
	return path
}

// MockFeedServer serves canned slates keyed by date under /slates/{date}.
func MockFeedServer(t *testing.T, slates map[string]*feed.Slate) *httptest.Server {
	t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		date := filepath.Base(r.URL.Path)
		slate, ok := slates[date]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(slate)
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// WaitForCondition waits for a condition to become true or times out.
func WaitForCondition(t *testing.T, timeout time.Duration, condition func() bool, message string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	require.Fail(t, "condition not met within timeout", message)
}

// CreateTestContext creates a context with a timeout for testing.
func CreateTestContext(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)

	return ctx
}

// GetEnvOrDefault returns environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// SkipIfShort skips test if running in short mode.
func SkipIfShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}
}
