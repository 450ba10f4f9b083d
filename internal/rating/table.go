// Package rating owns per-team Elo ratings and their update history.
package rating

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/models"
)

// Table is the owned rating arena keyed by team abbreviation. It is safe for
// concurrent use: updates for the same team are serialized to preserve the
// chronological-update invariant, updates for different teams proceed in
// parallel.
type Table struct {
	cfg    config.EloConfig
	logger *logrus.Logger

	mu    sync.RWMutex // guards the teams map, not the entries
	teams map[string]*teamEntry
}

type teamEntry struct {
	mu     sync.Mutex
	record models.EloRecord
}

// NewTable creates an empty rating table
func NewTable(cfg config.EloConfig, logger *logrus.Logger) *Table {
	if logger == nil {
		logger = logrus.New()
	}
	return &Table{
		cfg:    cfg,
		logger: logger,
		teams:  make(map[string]*teamEntry),
	}
}

// ExpectedWinProbability returns the logistic Elo expectation for a team
// against an opponent. The home side receives the configured home-advantage
// offset before the comparison.
func (t *Table) ExpectedWinProbability(teamRating, opponentRating float64, isHome bool) float64 {
	adjTeam := teamRating
	adjOpp := opponentRating
	if isHome {
		adjTeam += t.cfg.HomeAdvantage
	} else {
		adjOpp += t.cfg.HomeAdvantage
	}
	return 1.0 / (1.0 + math.Pow(10, (adjOpp-adjTeam)/400.0))
}

// entry returns the tracked entry for a team, creating it at the initial
// rating on first reference
func (t *Table) entry(team string) *teamEntry {
	t.mu.RLock()
	e, ok := t.teams[team]
	t.mu.RUnlock()
	if ok {
		return e
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.teams[team]; ok {
		return e
	}
	e = &teamEntry{
		record: models.EloRecord{
			Team:   team,
			Rating: t.cfg.InitialRating,
		},
	}
	t.teams[team] = e
	return e
}

// lookup returns the tracked entry without creating it
func (t *Table) lookup(team string) (*teamEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.teams[team]
	return e, ok
}

// UpdateRating applies a completed game result to the team's rating:
// newRating = current + K * (actual - expected). The opponent's rating is
// read as a snapshot; the opponent's own update is a separate call.
// History is append-only and must arrive in chronological order per team.
func (t *Table) UpdateRating(team, opponent string, won, isHome bool, date time.Time) (models.EloHistoryEntry, error) {
	if team == "" || opponent == "" {
		return models.EloHistoryEntry{}, fmt.Errorf("team and opponent are required")
	}

	opponentRating := t.entry(opponent).currentRating()

	e := t.entry(team)
	e.mu.Lock()
	defer e.mu.Unlock()

	if n := len(e.record.History); n > 0 && date.Before(e.record.History[n-1].Date) {
		return models.EloHistoryEntry{}, fmt.Errorf(
			"rating update for %s on %s is out of chronological order (last update %s)",
			team, date.Format("2006-01-02"), e.record.History[n-1].Date.Format("2006-01-02"))
	}

	expected := t.ExpectedWinProbability(e.record.Rating, opponentRating, isHome)
	actual := 0.0
	if won {
		actual = 1.0
	}

	delta := t.cfg.KFactor * (actual - expected)
	oldRating := e.record.Rating
	e.record.Rating += delta
	e.record.GamesPlayed++
	if won {
		e.record.Wins++
	} else {
		e.record.Losses++
	}

	entry := models.EloHistoryEntry{
		Date:      date,
		NewRating: e.record.Rating,
		Delta:     delta,
		Opponent:  opponent,
		Won:       won,
	}
	e.record.History = append(e.record.History, entry)

	t.logger.WithFields(logrus.Fields{
		"team":       team,
		"opponent":   opponent,
		"old_rating": oldRating,
		"new_rating": e.record.Rating,
		"delta":      delta,
		"won":        won,
	}).Debug("Elo rating updated")

	return entry, nil
}

// Get returns a copy of the team's Elo record
func (t *Table) Get(team string) (models.EloRecord, error) {
	e, ok := t.lookup(team)
	if !ok {
		return models.EloRecord{}, fmt.Errorf("%w: %s", models.ErrTeamNotFound, team)
	}
	return e.snapshot(), nil
}

// Seed registers a team at a specific rating, replacing any existing state.
// Used to restore a table from a persisted journal.
func (t *Table) Seed(record models.EloRecord) {
	e := t.entry(record.Team)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record = record
}

// Size returns the number of tracked teams
func (t *Table) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.teams)
}

func (e *teamEntry) currentRating() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.record.Rating
}

func (e *teamEntry) snapshot() models.EloRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec := e.record
	rec.History = append([]models.EloHistoryEntry(nil), e.record.History...)
	return rec
}

// MatchupPrediction is the rating table's view of an upcoming game
type MatchupPrediction struct {
	HomeTeam           string  `json:"home_team"`
	AwayTeam           string  `json:"away_team"`
	HomeRating         float64 `json:"home_rating"`
	AwayRating         float64 `json:"away_rating"`
	RatingDiff         float64 `json:"rating_diff"`
	HomeWinProbability float64 `json:"home_win_probability"`
	AwayWinProbability float64 `json:"away_win_probability"`
	Favored            string  `json:"favored"`
}

// PredictMatchup returns both ratings and home/away win probabilities.
// Unknown teams produce a tagged models.ErrTeamNotFound error; callers must
// check before using the prediction.
func (t *Table) PredictMatchup(home, away string) (MatchupPrediction, error) {
	homeEntry, ok := t.lookup(home)
	if !ok {
		return MatchupPrediction{}, fmt.Errorf("%w: %s", models.ErrTeamNotFound, home)
	}
	awayEntry, ok := t.lookup(away)
	if !ok {
		return MatchupPrediction{}, fmt.Errorf("%w: %s", models.ErrTeamNotFound, away)
	}

	homeRating := homeEntry.currentRating()
	awayRating := awayEntry.currentRating()
	homeProb := t.ExpectedWinProbability(homeRating, awayRating, true)

	favored := home
	if awayRating > homeRating {
		favored = away
	}

	return MatchupPrediction{
		HomeTeam:           home,
		AwayTeam:           away,
		HomeRating:         homeRating,
		AwayRating:         awayRating,
		RatingDiff:         homeRating - awayRating,
		HomeWinProbability: homeProb,
		AwayWinProbability: 1.0 - homeProb,
		Favored:            favored,
	}, nil
}
