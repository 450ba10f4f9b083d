package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/factors"
	"github.com/yourusername/court-vision/internal/models"
	"github.com/yourusername/court-vision/internal/odds"
)

func deepRecommender() *Recommender {
	cfg := config.DefaultEngineConfig().Recommendation
	return New(cfg, cfg.DeepAnalysis)
}

func scanRecommender() *Recommender {
	cfg := config.DefaultEngineConfig().Recommendation
	return New(cfg, cfg.ValueScan)
}

func edgeInput(homeEdge float64, confidence float64) Input {
	return Input{
		HomeTeam:   "BOS",
		AwayTeam:   "LAL",
		Confidence: confidence,
		Edge: odds.GameEdge{
			Home: odds.SideEdge{
				Price:   odds.BestPrice{Odds: -150, Bookmaker: "draftkings", Implied: 0.6},
				Edge:    homeEdge,
				HasLine: true,
			},
			Away: odds.SideEdge{
				Price:   odds.BestPrice{Odds: 130, Bookmaker: "fanduel", Implied: 0.4348},
				Edge:    -8.0,
				HasLine: true,
			},
		},
	}
}

func TestActionThresholdBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		edge   float64
		action string
	}{
		{"exactly strong bet cutoff", 10.0, models.ActionStrongBet},
		{"just under strong bet", 9.99, models.ActionLean},
		{"exactly lean cutoff", 5.0, models.ActionLean},
		{"just under lean", 4.99, models.ActionPass},
		{"deep negative", -12.0, models.ActionPass},
	}

	r := deepRecommender()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := r.Recommend(edgeInput(tt.edge, 80))
			assert.Equal(t, tt.action, rec.Action)
		})
	}
}

func TestValueScanProfileLeansEarlier(t *testing.T) {
	in := edgeInput(4.0, 80)

	assert.Equal(t, models.ActionPass, deepRecommender().Recommend(in).Action)
	assert.Equal(t, models.ActionLean, scanRecommender().Recommend(in).Action)
}

func TestUnitTiers(t *testing.T) {
	tests := []struct {
		edge  float64
		units float64
	}{
		{2.0, 0},
		{4.0, 0.5},
		{6.5, 1},
		{10.0, 2},
		{12.0, 2},
		{14.0, 3},
	}

	r := deepRecommender()
	for _, tt := range tests {
		rec := r.Recommend(edgeInput(tt.edge, 80))
		assert.Equal(t, tt.units, rec.Units, "edge %.2f", tt.edge)
	}
}

func TestLowConfidenceForcesZeroUnits(t *testing.T) {
	r := deepRecommender()
	rec := r.Recommend(edgeInput(11.0, 45))

	assert.Equal(t, models.ActionStrongBet, rec.Action)
	assert.Zero(t, rec.Units)
}

func TestRecommendationCarriesBestPrice(t *testing.T) {
	r := deepRecommender()
	rec := r.Recommend(edgeInput(11.0, 80))

	assert.Equal(t, "BOS", rec.Side)
	assert.Equal(t, -150, rec.Odds)
	assert.Equal(t, "draftkings", rec.Bookmaker)
}

func TestPicksLargerEdgeSide(t *testing.T) {
	in := edgeInput(-3.0, 80)
	in.Edge.Away.Edge = 12.0

	rec := deepRecommender().Recommend(in)
	assert.Equal(t, models.ActionStrongBet, rec.Action)
	assert.Equal(t, "LAL", rec.Side)
	assert.Equal(t, 130, rec.Odds)
}

func TestSingleLinedSide(t *testing.T) {
	in := edgeInput(2.0, 80)
	in.Edge.Home = odds.SideEdge{}
	in.Edge.Away.Edge = 7.0

	rec := deepRecommender().Recommend(in)
	assert.Equal(t, models.ActionLean, rec.Action)
	assert.Equal(t, "LAL", rec.Side)
}

func TestNoMarketPasses(t *testing.T) {
	in := Input{HomeTeam: "BOS", AwayTeam: "LAL", Confidence: 80}

	rec := deepRecommender().Recommend(in)
	assert.Equal(t, models.ActionPass, rec.Action)
	assert.Empty(t, rec.Side)
	assert.Contains(t, rec.Narrative, "No moneyline market")
}

func TestNarrativeCitesTopDrivers(t *testing.T) {
	in := edgeInput(11.0, 80)
	in.Aggregation = factors.Aggregation{
		Results: []models.FactorResult{
			{Name: "efficiency_differential", Weight: 0.15, Advantage: models.AdvantageHome, Impact: 8, Insight: "Net rating: home +8.5 vs away +1.0", DataAvailable: true},
			{Name: "rest_schedule", Weight: 0.10, Advantage: models.AdvantageHome, Impact: 6, Insight: "Rest edge: home 3d vs away 1d", DataAvailable: true},
			{Name: "referee_tendency", Weight: 0.04, Advantage: models.AdvantageAway, Impact: 1, Insight: "Crew chief favors road sides", DataAvailable: true},
			{Name: "head_to_head", Weight: 0.08, Advantage: models.AdvantageNeutral, Impact: 0, Insight: "No meetings", DataAvailable: false},
		},
	}

	rec := deepRecommender().Recommend(in)
	assert.Contains(t, rec.Narrative, "STRONG BET BOS")
	assert.Contains(t, rec.Narrative, "Net rating")

	// Ranked list excludes neutral and unavailable factors, ordered by
	// impact-derived weight
	assert.Len(t, rec.RankedFactors, 3)
	assert.Equal(t, "efficiency_differential", rec.RankedFactors[0].Name)
	assert.Equal(t, "rest_schedule", rec.RankedFactors[1].Name)
}
