// Package engine combines the rating table, score simulator, and factor bank
// into a single calibrated win probability and drives per-game analysis.
package engine

import (
	"github.com/yourusername/court-vision/internal/config"
)

// BaseHeuristics holds the five qualitative sub-probabilities, each centered
// at 0.5 from the home side's perspective
type BaseHeuristics struct {
	TeamStrength float64 `json:"team_strength"`
	Matchup      float64 `json:"matchup"`
	Injury       float64 `json:"injury"`
	Form         float64 `json:"form"`
	Situational  float64 `json:"situational"`
}

// Blender folds the base heuristics, the factor bank's aggregate adjustment,
// and the simulator's win fraction into one home win probability
type Blender struct {
	cfg config.BlendConfig
}

// NewBlender creates a blender with the given calibration
func NewBlender(cfg config.BlendConfig) *Blender {
	return &Blender{cfg: cfg}
}

// Base computes the weighted base probability. The five weights sum to less
// than 1.0 so the unweighted remainder stays anchored at the 0.5 base rate.
func (b *Blender) Base(h BaseHeuristics) float64 {
	return 0.5 +
		b.cfg.TeamStrengthWeight*(h.TeamStrength-0.5) +
		b.cfg.MatchupWeight*(h.Matchup-0.5) +
		b.cfg.InjuryWeight*(h.Injury-0.5) +
		b.cfg.FormWeight*(h.Form-0.5) +
		b.cfg.SituationalWeight*(h.Situational-0.5)
}

// Blend produces the final clamped home win probability.
// aggregateAdjustment is the factor bank's summed adjustment in percentage
// points; simWinFraction is the simulator's home-win fraction.
func (b *Blender) Blend(h BaseHeuristics, aggregateAdjustment, simWinFraction float64) float64 {
	base := b.Base(h)
	damped := 0.5 + (base-0.5)*b.cfg.Damping
	factorProb := damped + aggregateAdjustment/100.0
	final := factorProb*b.cfg.FactorWeight + simWinFraction*b.cfg.SimulationWeight
	return b.Clamp(final)
}

// Clamp bounds a probability to the configured safe interval
func (b *Blender) Clamp(p float64) float64 {
	if p < b.cfg.MinProbability {
		return b.cfg.MinProbability
	}
	if p > b.cfg.MaxProbability {
		return b.cfg.MaxProbability
	}
	return p
}
