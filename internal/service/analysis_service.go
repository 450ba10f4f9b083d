// Package service coordinates the prediction engine with caching, the rating
// journal, and operational metrics.
package service

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/engine"
	applog "github.com/yourusername/court-vision/internal/logger"
	"github.com/yourusername/court-vision/internal/metrics"
	"github.com/yourusername/court-vision/internal/models"
	"github.com/yourusername/court-vision/internal/rating"
	"github.com/yourusername/court-vision/internal/repository"
)

// Result cache retention; a game's analysis is stable for a given calibration
// until its inputs are refreshed upstream
const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// AnalysisService is the operational wrapper around the analyzer: cached
// results, journal-backed ratings, and metrics.
type AnalysisService struct {
	cfg      *config.Config
	table    *rating.Table
	analyzer *engine.Analyzer
	journal  repository.RatingJournal
	cache    *gocache.Cache
	logger   *logrus.Logger
	alog     *applog.AnalysisLogger
}

// NewAnalysisService creates the service. Pass repository.NopJournal when no
// journal database is configured.
func NewAnalysisService(cfg *config.Config, journal repository.RatingJournal, logger *logrus.Logger) *AnalysisService {
	if logger == nil {
		logger = logrus.New()
	}
	if journal == nil {
		journal = repository.NopJournal{}
	}
	table := rating.NewTable(cfg.Engine.Elo, logger)
	return &AnalysisService{
		cfg:      cfg,
		table:    table,
		analyzer: engine.New(&cfg.Engine, table, logger),
		journal:  journal,
		cache:    gocache.New(cacheTTL, cacheCleanup),
		logger:   logger,
		alog:     applog.NewAnalysisLogger(logger),
	}
}

// Restore seeds the rating table from the journal. Call once on startup,
// before any analysis or rating update.
func (s *AnalysisService) Restore(ctx context.Context) error {
	records, err := s.journal.LoadRecords(ctx)
	if err != nil {
		return fmt.Errorf("restoring rating table: %w", err)
	}
	for _, record := range records {
		s.table.Seed(record)
	}
	metrics.UpdateTrackedTeams(s.table.Size())
	if len(records) > 0 {
		s.logger.WithField("teams", len(records)).Info("Rating table restored from journal")
	}
	return nil
}

// AnalyzeGame analyzes one game, serving repeated requests from cache
func (s *AnalysisService) AnalyzeGame(input *models.AnalysisInput) (*models.AnalysisResult, error) {
	if input != nil && input.Game != nil {
		if cached, found := s.cache.Get(s.cacheKey(input.Game)); found {
			return cached.(*models.AnalysisResult), nil
		}
	}

	start := time.Now()
	result, err := s.analyzer.Analyze(input)
	if err != nil {
		metrics.RecordAnalysisFailure()
		return nil, err
	}
	metrics.RecordAnalysis(time.Since(start).Seconds())
	metrics.RecordRecommendation(result.Recommendation.Action)

	gameID := input.Game.ID.String()
	for _, factor := range result.Factors {
		if !factor.DataAvailable {
			metrics.RecordFactorFallback(factor.Name)
			s.alog.LogFactorFallback(gameID, factor.Name, factor.DataSource)
		}
	}
	s.alog.LogGameAnalysis(gameID, result.HomeTeam, result.AwayTeam,
		result.HomeWinProbability, result.Confidence, float64(time.Since(start).Milliseconds()))
	if rec := result.Recommendation; rec.Action != models.ActionPass {
		s.alog.LogRecommendation(gameID, rec.Action, rec.Side, rec.Odds,
			rec.Units, selectedEdgeValue(result), result.Confidence)
	}

	s.cache.Set(s.cacheKey(input.Game), result, gocache.DefaultExpiration)
	return result, nil
}

// selectedEdgeValue returns the edge on the recommended side
func selectedEdgeValue(result *models.AnalysisResult) float64 {
	if result.Recommendation.Side == result.AwayTeam {
		return result.Edge.Away
	}
	return result.Edge.Home
}

// AnalyzeSlate analyzes a full slate. Individual failures become stub
// results; the slate always completes.
func (s *AnalysisService) AnalyzeSlate(inputs []*models.AnalysisInput) []*models.AnalysisResult {
	start := time.Now()
	results := make([]*models.AnalysisResult, 0, len(inputs))
	for _, input := range inputs {
		result, err := s.AnalyzeGame(input)
		if err != nil {
			var game *models.Game
			if input != nil {
				game = input.Game
			}
			results = append(results, models.StubResult(game, err.Error()))
			continue
		}
		results = append(results, result)
	}
	metrics.RecordSlateProcessed(len(results))

	s.logger.WithFields(logrus.Fields{
		"games":    len(results),
		"duration": time.Since(start).String(),
	}).Info("Slate analyzed")
	return results
}

// RecordResult applies a completed game to the rating table and journals both
// sides' updates
func (s *AnalysisService) RecordResult(ctx context.Context, game *models.Game) error {
	if game == nil || game.FinalScore == nil {
		return fmt.Errorf("record result: game has no final score")
	}
	if err := game.Validate(); err != nil {
		return fmt.Errorf("record result: %w", err)
	}

	homeWon := game.FinalScore.HomeWon()
	home := game.HomeTeam.Abbreviation
	away := game.AwayTeam.Abbreviation

	sides := []struct {
		team, opponent string
		won, isHome    bool
	}{
		{home, away, homeWon, true},
		{away, home, !homeWon, false},
	}
	for _, side := range sides {
		entry, err := s.table.UpdateRating(side.team, side.opponent, side.won, side.isHome, game.Tipoff)
		if err != nil {
			return fmt.Errorf("record result: %w", err)
		}
		metrics.RecordRatingUpdate()
		s.alog.LogRatingUpdate(side.team, side.opponent,
			entry.NewRating-entry.Delta, entry.NewRating, entry.Delta, side.won)
		if err := s.journal.Append(ctx, repository.JournalEntry{
			Team:      side.team,
			Opponent:  side.opponent,
			GameDate:  game.Tipoff,
			Won:       side.won,
			NewRating: entry.NewRating,
			Delta:     entry.Delta,
		}); err != nil {
			return fmt.Errorf("journaling %s: %w", side.team, err)
		}
	}

	metrics.UpdateTrackedTeams(s.table.Size())
	// Ratings moved, cached analyses are stale
	s.cache.Flush()
	return nil
}

// Rankings returns the current Elo rankings
func (s *AnalysisService) Rankings() []rating.TeamRanking {
	return s.table.Rankings()
}

// Table exposes the shared rating table
func (s *AnalysisService) Table() *rating.Table {
	return s.table
}

func (s *AnalysisService) cacheKey(game *models.Game) string {
	return fmt.Sprintf("%s:%s", s.cfg.Engine.CalibrationVersion, game.ID)
}
