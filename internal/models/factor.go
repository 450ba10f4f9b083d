package models

// AdvantageSide identifies which side of a market a factor favors
type AdvantageSide string

const (
	AdvantageHome    AdvantageSide = "home"
	AdvantageAway    AdvantageSide = "away"
	AdvantageOver    AdvantageSide = "over"
	AdvantageUnder   AdvantageSide = "under"
	AdvantageNeutral AdvantageSide = "neutral"
)

// FactorResult represents the evaluation of a single heuristic factor.
// When the underlying data was unavailable the result is an explicit neutral
// default (DataAvailable=false) rather than an absent entry.
type FactorResult struct {
	Name           string        `json:"name" validate:"required"`
	Weight         float64       `json:"weight" validate:"gte=0,lte=1"`
	Advantage      AdvantageSide `json:"advantage" validate:"required,oneof=home away over under neutral"`
	Impact         float64       `json:"impact" validate:"gte=0,lte=10"`
	ProbAdjustment float64       `json:"prob_adjustment"` // signed percentage points
	Insight        string        `json:"insight"`
	DataSource     string        `json:"data_source"`
	DataAvailable  bool          `json:"data_available"`
}

// NeutralFactor builds the graceful-degradation result for a factor whose
// input data is missing
func NeutralFactor(name string, weight float64, insight, source string) FactorResult {
	return FactorResult{
		Name:          name,
		Weight:        weight,
		Advantage:     AdvantageNeutral,
		Impact:        0,
		Insight:       insight,
		DataSource:    source,
		DataAvailable: false,
	}
}

// IsKeyInsight reports whether the factor is impactful enough to surface
// in narrative generation
func (f FactorResult) IsKeyInsight(threshold float64) bool {
	return f.Impact > threshold
}
