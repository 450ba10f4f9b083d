package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/court-vision/internal/config"
)

func newTestBlender() *Blender {
	return NewBlender(config.DefaultEngineConfig().Blend)
}

func TestBaseAllNeutralIsHalf(t *testing.T) {
	b := newTestBlender()
	h := BaseHeuristics{TeamStrength: 0.5, Matchup: 0.5, Injury: 0.5, Form: 0.5, Situational: 0.5}
	assert.InDelta(t, 0.5, b.Base(h), 1e-12)
}

func TestBaseWeightsLeaveMassAtBaseRate(t *testing.T) {
	b := newTestBlender()
	assert.Less(t, b.cfg.BaseWeightSum(), 1.0)

	// Maximally one-sided heuristics still cannot reach 1.0 before damping
	h := BaseHeuristics{TeamStrength: 1, Matchup: 1, Injury: 1, Form: 1, Situational: 1}
	assert.InDelta(t, 0.5+0.5*b.cfg.BaseWeightSum(), b.Base(h), 1e-12)
}

func TestBlendKnownValues(t *testing.T) {
	b := newTestBlender()
	h := BaseHeuristics{TeamStrength: 0.7, Matchup: 0.5, Injury: 0.5, Form: 0.5, Situational: 0.5}

	// base = 0.5 + 0.25*0.2 = 0.55; damped = 0.5 + 0.05*0.85 = 0.5425
	// factorProb = 0.5425 + 4/100 = 0.5825
	// final = 0.5825*0.75 + 0.60*0.25 = 0.586875
	got := b.Blend(h, 4.0, 0.60)
	assert.InDelta(t, 0.586875, got, 1e-9)
}

func TestBlendDampingPullsTowardHalf(t *testing.T) {
	b := newTestBlender()
	h := BaseHeuristics{TeamStrength: 0.9, Matchup: 0.7, Injury: 0.6, Form: 0.65, Situational: 0.6}

	base := b.Base(h)
	blended := b.Blend(h, 0, base)
	assert.Less(t, math.Abs(blended-0.5), math.Abs(base-0.5)+1e-12)
}

func TestBlendAlwaysInSafeInterval(t *testing.T) {
	b := newTestBlender()
	extremes := []struct {
		h   BaseHeuristics
		adj float64
		sim float64
	}{
		{BaseHeuristics{1, 1, 1, 1, 1}, 100, 1},
		{BaseHeuristics{0, 0, 0, 0, 0}, -100, 0},
		{BaseHeuristics{0.5, 0.5, 0.5, 0.5, 0.5}, 500, 1},
		{BaseHeuristics{0.5, 0.5, 0.5, 0.5, 0.5}, -500, 0},
	}
	for _, e := range extremes {
		got := b.Blend(e.h, e.adj, e.sim)
		assert.GreaterOrEqual(t, got, 0.05)
		assert.LessOrEqual(t, got, 0.95)
	}
}

func TestClampBounds(t *testing.T) {
	b := newTestBlender()
	assert.Equal(t, 0.05, b.Clamp(-1))
	assert.Equal(t, 0.95, b.Clamp(2))
	assert.Equal(t, 0.5, b.Clamp(0.5))
}
