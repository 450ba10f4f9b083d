// Package backtest replays the full prediction pipeline against historical
// games with known results, grading each recommendation against whether the
// home side covered the spread.
package backtest

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/engine"
	"github.com/yourusername/court-vision/internal/models"
	"github.com/yourusername/court-vision/internal/odds"
	"github.com/yourusername/court-vision/internal/rating"
)

// Grading outcomes
const (
	OutcomeWin  = "WIN"
	OutcomeLoss = "LOSS"
	OutcomePass = "PASS"
)

// Harness drives the analyzer over historical games. Ratings evolve
// chronologically as each game's result is applied, so later games see the
// table as it would have stood at the time.
type Harness struct {
	cfg      config.BacktestConfig
	table    *rating.Table
	analyzer *engine.Analyzer
	logger   *logrus.Logger
}

// NewHarness creates a backtest harness with a fresh rating table
func NewHarness(cfg config.BacktestConfig, engineCfg *config.EngineConfig, logger *logrus.Logger) *Harness {
	if logger == nil {
		logger = logrus.New()
	}
	table := rating.NewTable(engineCfg.Elo, logger)
	return &Harness{
		cfg:      cfg,
		table:    table,
		analyzer: engine.New(engineCfg, table, logger),
		logger:   logger,
	}
}

// Table exposes the evolving rating table, useful for post-run rankings
func (h *Harness) Table() *rating.Table {
	return h.table
}

// Run replays every historical game in tipoff order and aggregates grading
// results. Games without a final score cannot be graded and are skipped.
func (h *Harness) Run(inputs []*models.AnalysisInput) (*Summary, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("backtest: no historical games supplied")
	}

	ordered := make([]*models.AnalysisInput, len(inputs))
	copy(ordered, inputs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Game.Tipoff.Before(ordered[j].Game.Tipoff)
	})

	summary := NewSummary(h.cfg.InitialBankroll)
	unitSize := decimal.NewFromFloat(h.cfg.UnitSize)

	for _, input := range ordered {
		game := input.Game
		if game.FinalScore == nil {
			h.logger.WithField("game_id", game.ID).Warn("Historical game has no final score, skipping")
			continue
		}

		grade, err := h.replayGame(input, unitSize)
		if err != nil {
			h.logger.WithError(err).WithField("game_id", game.ID).Warn("Replay failed, grading as pass")
			grade = GameGrade{
				GameID:  game.ID,
				Matchup: matchupLabel(game),
				Outcome: OutcomePass,
				Note:    err.Error(),
			}
		}
		summary.Record(grade)

		if err := h.applyResult(game); err != nil {
			return nil, fmt.Errorf("backtest: applying result: %w", err)
		}
	}

	summary.Finalize()
	h.logger.WithFields(logrus.Fields{
		"games":    summary.TotalGames,
		"bets":     summary.TotalBets,
		"wins":     summary.Wins,
		"losses":   summary.Losses,
		"win_rate": fmt.Sprintf("%.3f", summary.WinRate),
	}).Info("Backtest complete")
	return summary, nil
}

// replayGame analyzes a game pre-result and grades the pick against the
// actual spread cover
func (h *Harness) replayGame(input *models.AnalysisInput, unitSize decimal.Decimal) (GameGrade, error) {
	game := input.Game
	result, err := h.analyzer.Analyze(input)
	if err != nil {
		return GameGrade{}, err
	}

	spread, hasSpread := homeSpread(game)
	grade := GameGrade{
		GameID:      game.ID,
		Matchup:     matchupLabel(game),
		Action:      result.Recommendation.Action,
		Side:        result.Recommendation.Side,
		Units:       result.Recommendation.Units,
		Confidence:  result.Confidence,
		HomeCovered: HomeCovered(game.FinalScore.Home, game.FinalScore.Away, spread),
		Outcome:     OutcomePass,
	}

	if result.Recommendation.Action == models.ActionPass || grade.Units == 0 {
		return grade, nil
	}
	if !hasSpread {
		grade.Note = "no spread line supplied"
		return grade, nil
	}

	pickedHome := grade.Side == game.HomeTeam.Abbreviation
	won := pickedHome == grade.HomeCovered

	wager := unitSize.Mul(decimal.NewFromFloat(grade.Units))
	if won {
		grade.Outcome = OutcomeWin
		grade.Profit = payout(wager, result.Recommendation.Odds)
	} else {
		grade.Outcome = OutcomeLoss
		grade.Profit = wager.Neg()
	}
	return grade, nil
}

// applyResult feeds the final score back into the rating table
func (h *Harness) applyResult(game *models.Game) error {
	homeWon := game.FinalScore.HomeWon()
	home := game.HomeTeam.Abbreviation
	away := game.AwayTeam.Abbreviation

	if _, err := h.table.UpdateRating(home, away, homeWon, true, game.Tipoff); err != nil {
		return err
	}
	if _, err := h.table.UpdateRating(away, home, !homeWon, false, game.Tipoff); err != nil {
		return err
	}
	return nil
}

// HomeCovered reports whether the home side covered the quoted spread.
// The spread is home-perspective, negative when the home side is favored.
func HomeCovered(homeScore, awayScore int, spread float64) bool {
	return float64(homeScore)+spread > float64(awayScore)
}

// homeSpread returns the first quoted home spread across the books
func homeSpread(game *models.Game) (float64, bool) {
	for _, book := range game.Odds {
		if book.HomeSpread != 0 {
			return book.HomeSpread, true
		}
	}
	return 0, false
}

// payout returns the profit on a winning wager at an American price
func payout(wager decimal.Decimal, americanOdds int) decimal.Decimal {
	dec, err := odds.AmericanToDecimal(americanOdds)
	if err != nil {
		return decimal.Zero
	}
	return wager.Mul(decimal.NewFromFloat(dec - 1))
}

func matchupLabel(game *models.Game) string {
	if game.HomeTeam == nil || game.AwayTeam == nil {
		return ""
	}
	return fmt.Sprintf("%s @ %s", game.AwayTeam.Abbreviation, game.HomeTeam.Abbreviation)
}
