package engine

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/factors"
	"github.com/yourusername/court-vision/internal/models"
	"github.com/yourusername/court-vision/internal/odds"
	"github.com/yourusername/court-vision/internal/rating"
	"github.com/yourusername/court-vision/internal/recommend"
	"github.com/yourusername/court-vision/internal/simulation"
)

// Risk flag thresholds
const (
	sparseFactorFloor   = 5
	significantInjuries = 1.5
	lineVarianceLimit   = 1.0
)

// Analyzer runs the full prediction pipeline for one game: base heuristics,
// factor bank, score simulation, probability blend, market edge, confidence,
// and recommendation. All inputs are fully resolved; no I/O happens here.
type Analyzer struct {
	cfg     *config.EngineConfig
	table   *rating.Table
	sim     *simulation.Simulator
	bank    *factors.Bank
	blender *Blender
	rec     *recommend.Recommender
	logger  *logrus.Logger
}

// New creates an analyzer around a shared rating table. Recommendations use
// the deep analysis threshold profile.
func New(cfg *config.EngineConfig, table *rating.Table, logger *logrus.Logger) *Analyzer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Analyzer{
		cfg:     cfg,
		table:   table,
		sim:     simulation.New(cfg.Simulation),
		bank:    factors.NewBank(cfg.Recommendation, logger),
		blender: NewBlender(cfg.Blend),
		rec:     recommend.New(cfg.Recommendation, cfg.Recommendation.DeepAnalysis),
		logger:  logger,
	}
}

// Analyze produces the complete analysis result for one game
func (a *Analyzer) Analyze(input *models.AnalysisInput) (*models.AnalysisResult, error) {
	if input == nil || input.Game == nil {
		return nil, fmt.Errorf("analyze: %w", models.ErrMissingTeams)
	}
	game := input.Game
	if err := game.Validate(); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	heuristics := a.computeHeuristics(game, input.Injuries, input.Factors)
	agg := a.bank.Evaluate(game, input.Factors, input.News)

	simResult := a.sim.Simulate(
		simulation.ParamsFromTeam(game.HomeTeam),
		simulation.ParamsFromTeam(game.AwayTeam),
		a.cfg.Simulation.Iterations,
		simulationSeed(game),
	)

	homeProb := a.blender.Blend(heuristics, agg.TotalProbAdjustment, simResult.HomeWinFraction)
	awayProb := 1 - homeProb

	gameEdge := odds.ComputeGameEdge(game.Odds, homeProb, awayProb)

	confidence := recommend.Confidence(recommend.ConfidenceInput{
		Aggregation:     agg,
		EdgeMagnitude:   selectedEdge(gameEdge),
		SimWinFraction:  simResult.HomeWinFraction,
		HomeProbability: homeProb,
	})

	rec := a.rec.Recommend(recommend.Input{
		HomeTeam:    game.HomeTeam.Abbreviation,
		AwayTeam:    game.AwayTeam.Abbreviation,
		Edge:        gameEdge,
		Confidence:  confidence,
		Aggregation: agg,
	})

	result := &models.AnalysisResult{
		GameID:             game.ID,
		HomeTeam:           game.HomeTeam.Abbreviation,
		AwayTeam:           game.AwayTeam.Abbreviation,
		HomeWinProbability: homeProb,
		AwayWinProbability: awayProb,
		MarketImplied: models.SideValues{
			Home: gameEdge.Home.Price.Implied,
			Away: gameEdge.Away.Price.Implied,
		},
		Edge: models.SideValues{
			Home: gameEdge.Home.Edge,
			Away: gameEdge.Away.Edge,
		},
		Confidence:     confidence,
		Recommendation: rec,
		Factors:        agg.Results,
		Risks:          a.collectRisks(game, input.Injuries, input.Factors, agg),
		Reasoning:      a.reasoning(game, heuristics, agg, simResult, homeProb),
		AnalyzedAt:     time.Now(),
	}

	a.logger.WithFields(logrus.Fields{
		"game_id":    result.GameID,
		"matchup":    fmt.Sprintf("%s @ %s", result.AwayTeam, result.HomeTeam),
		"home_prob":  fmt.Sprintf("%.3f", homeProb),
		"confidence": confidence,
		"action":     rec.Action,
	}).Info("Game analyzed")

	return result, nil
}

// AnalyzeBatch analyzes a slate of games. A single game failing produces a
// stub result carrying the error reason; the batch always completes.
func (a *Analyzer) AnalyzeBatch(inputs []*models.AnalysisInput) []*models.AnalysisResult {
	results := make([]*models.AnalysisResult, 0, len(inputs))
	for _, input := range inputs {
		result, err := a.Analyze(input)
		if err != nil {
			var game *models.Game
			if input != nil {
				game = input.Game
			}
			a.logger.WithError(err).Warn("Game analysis failed, substituting stub result")
			results = append(results, models.StubResult(game, err.Error()))
			continue
		}
		results = append(results, result)
	}
	return results
}

// simulationSeed derives a stable per-game seed so repeated analyses of the
// same game are reproducible
func simulationSeed(game *models.Game) uint64 {
	return binary.BigEndian.Uint64(game.ID[:8])
}

// selectedEdge mirrors the recommendation side pick: the larger edge among
// quoted sides feeds the confidence scorer
func selectedEdge(ge odds.GameEdge) float64 {
	switch {
	case ge.Home.HasLine && ge.Away.HasLine:
		if ge.Home.Edge >= ge.Away.Edge {
			return ge.Home.Edge
		}
		return ge.Away.Edge
	case ge.Home.HasLine:
		return ge.Home.Edge
	case ge.Away.HasLine:
		return ge.Away.Edge
	}
	return 0
}

func (a *Analyzer) collectRisks(game *models.Game, injuries models.InjuryMap, data *models.FactorData, agg factors.Aggregation) []string {
	var risks []string
	if agg.DataAvailableCount < sparseFactorFloor {
		risks = append(risks, fmt.Sprintf("Only %d of %d factors had real data", agg.DataAvailableCount, len(agg.Results)))
	}
	if !game.HasMarket() {
		risks = append(risks, "No market odds supplied, edge and recommendation unavailable")
	}
	if impact := injuries.ImpactScore(game.HomeTeam.Abbreviation); impact > significantInjuries {
		risks = append(risks, fmt.Sprintf("%s carrying significant injury impact (%.1f)", game.HomeTeam.Abbreviation, impact))
	}
	if impact := injuries.ImpactScore(game.AwayTeam.Abbreviation); impact > significantInjuries {
		risks = append(risks, fmt.Sprintf("%s carrying significant injury impact (%.1f)", game.AwayTeam.Abbreviation, impact))
	}
	if data != nil && data.LineMovement != nil && data.LineMovement.Variance > lineVarianceLimit {
		risks = append(risks, fmt.Sprintf("Books disagree on the line (variance %.1f)", data.LineMovement.Variance))
	}
	return risks
}

func (a *Analyzer) reasoning(game *models.Game, h BaseHeuristics, agg factors.Aggregation, sim simulation.Result, homeProb float64) string {
	return fmt.Sprintf(
		"%s @ %s: model %.1f%% home off base %.3f (strength %.3f, matchup %.3f, injuries %.3f, form %.3f, situational %.3f), "+
			"factor adjustment %+.1f pts across %d signals (overall %s), simulation %.1f%% home over %d runs (proj %.0f-%.0f)",
		game.AwayTeam.Abbreviation, game.HomeTeam.Abbreviation,
		homeProb*100, a.blender.Base(h),
		h.TeamStrength, h.Matchup, h.Injury, h.Form, h.Situational,
		agg.TotalProbAdjustment, agg.DataAvailableCount, agg.OverallAdvantage,
		sim.HomeWinFraction*100, sim.Iterations,
		sim.MeanHomeScore, sim.MeanAwayScore,
	)
}
