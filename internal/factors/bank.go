// Package factors evaluates the bank of independent heuristic signals that
// feed the probability blender. Every factor degrades to an explicit neutral
// result when its input data is absent; a factor never fails an analysis.
package factors

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/models"
)

// Declared factor weights. These describe each signal's relative importance
// for narrative ranking; they are not blend weights.
const (
	weightHeadToHead    = 0.08
	weightPace          = 0.05
	weightATSTrend      = 0.07
	weightLineMovement  = 0.10
	weightPublicBetting = 0.06
	weightRestSchedule  = 0.10
	weightReferee       = 0.04
	weightClutch        = 0.06
	weightQuarterSplits = 0.05
	weightSituational   = 0.07
	weightEfficiency    = 0.15
	weightNewsSentiment = 0.06
)

// Bank evaluates all heuristic factors for a matchup
type Bank struct {
	cfg    config.RecommendationConfig
	logger *logrus.Logger
}

// NewBank creates a factor bank with the given calibration
func NewBank(cfg config.RecommendationConfig, logger *logrus.Logger) *Bank {
	if logger == nil {
		logger = logrus.New()
	}
	return &Bank{cfg: cfg, logger: logger}
}

// Aggregation is the combined view over all factor results
type Aggregation struct {
	Results             []models.FactorResult `json:"results"`
	HomeCount           int                   `json:"home_count"`
	AwayCount           int                   `json:"away_count"`
	OverallAdvantage    models.AdvantageSide  `json:"overall_advantage"`
	TotalProbAdjustment float64               `json:"total_prob_adjustment"` // percentage points
	KeyInsights         []models.FactorResult `json:"key_insights"`
	DataAvailableCount  int                   `json:"data_available_count"`
	ReverseLineMovement bool                  `json:"reverse_line_movement"`
}

// Evaluate runs every factor against the supplied game and optional sub-data
// and aggregates the results
func (b *Bank) Evaluate(game *models.Game, data *models.FactorData, news []models.NewsArticle) Aggregation {
	results := []models.FactorResult{
		b.headToHead(data),
		b.paceMismatch(game),
		b.atsTrend(data),
		b.lineMovement(data),
		b.publicBetting(data),
		b.restSchedule(data),
		b.refereeTendency(data),
		b.clutchRecord(data),
		b.quarterSplits(data),
		b.situational(data),
		b.efficiencyDifferential(game),
		b.newsSentiment(game, news),
	}

	agg := Aggregation{Results: results, OverallAdvantage: models.AdvantageNeutral}
	for _, r := range results {
		switch r.Advantage {
		case models.AdvantageHome:
			agg.HomeCount++
		case models.AdvantageAway:
			agg.AwayCount++
		}
		agg.TotalProbAdjustment += r.ProbAdjustment
		if r.DataAvailable {
			agg.DataAvailableCount++
		} else {
			b.logger.WithFields(logrus.Fields{
				"factor":      r.Name,
				"data_source": r.DataSource,
			}).Debug("Factor data unavailable, using neutral default")
		}
		if r.IsKeyInsight(b.cfg.KeyInsightThreshold) {
			agg.KeyInsights = append(agg.KeyInsights, r)
		}
	}

	// A side only claims the overall advantage with a clear count margin
	switch {
	case agg.HomeCount > agg.AwayCount+b.cfg.AdvantageMargin:
		agg.OverallAdvantage = models.AdvantageHome
	case agg.AwayCount > agg.HomeCount+b.cfg.AdvantageMargin:
		agg.OverallAdvantage = models.AdvantageAway
	}

	agg.ReverseLineMovement = detectReverseLineMovement(data)
	return agg
}

// detectReverseLineMovement reports whether the line has moved against the
// public betting majority, a classic sharp-money signal
func detectReverseLineMovement(data *models.FactorData) bool {
	if data == nil || data.LineMovement == nil || data.PublicBetting == nil {
		return false
	}
	shift := data.LineMovement.Shift()
	tickets := data.PublicBetting.HomeTicketPercent
	// Public on home but line moving toward away, or the reverse
	if tickets >= 60 && shift > 0.5 {
		return true
	}
	if tickets <= 40 && shift < -0.5 {
		return true
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func advantageFromSign(v float64) models.AdvantageSide {
	switch {
	case v > 0:
		return models.AdvantageHome
	case v < 0:
		return models.AdvantageAway
	default:
		return models.AdvantageNeutral
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
