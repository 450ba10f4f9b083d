// Package recommend maps model edge and confidence to a sized betting action
// with ranked natural-language justification.
package recommend

import (
	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/factors"
	"github.com/yourusername/court-vision/internal/models"
	"github.com/yourusername/court-vision/internal/odds"
)

// Unit sizing tiers over edge percentage
const (
	unitTierHalf   = 3.0
	unitTierSingle = 5.0
	unitTierDouble = 8.0
	unitTierTriple = 12.0
)

// Recommender applies one threshold profile to analysis output. The deep
// analysis and value scan paths carry different cutoffs; callers choose the
// profile explicitly.
type Recommender struct {
	cfg     config.RecommendationConfig
	profile config.ThresholdProfile
}

// New creates a recommender for the given threshold profile
func New(cfg config.RecommendationConfig, profile config.ThresholdProfile) *Recommender {
	return &Recommender{cfg: cfg, profile: profile}
}

// Input carries everything a recommendation decision needs
type Input struct {
	HomeTeam    string
	AwayTeam    string
	Edge        odds.GameEdge
	Confidence  float64
	Aggregation factors.Aggregation
}

// Recommend produces the sized action for one analyzed game
func (r *Recommender) Recommend(in Input) models.Recommendation {
	ranked := rankFactors(in.Aggregation)

	side, sideEdge, price, ok := pickSide(in)
	if !ok {
		return models.Recommendation{
			Action:        models.ActionPass,
			RankedFactors: ranked,
			Narrative:     "No moneyline market available for this game",
		}
	}

	action := models.ActionPass
	switch {
	case sideEdge >= r.profile.StrongBetEdge:
		action = models.ActionStrongBet
	case sideEdge >= r.profile.LeanEdge:
		action = models.ActionLean
	}

	rec := models.Recommendation{
		Action:        action,
		Units:         r.unitsForEdge(sideEdge, in.Confidence),
		RankedFactors: ranked,
	}
	if action != models.ActionPass {
		rec.Side = side
		rec.Odds = price.Odds
		rec.Bookmaker = price.Bookmaker
	}
	rec.Narrative = r.narrative(in, rec, sideEdge)
	return rec
}

// pickSide selects the side with the larger model edge among sides that have
// a quoted line. Each side's edge stands on its own; a bad home number never
// implies away value.
func pickSide(in Input) (side string, edge float64, price odds.BestPrice, ok bool) {
	home, away := in.Edge.Home, in.Edge.Away
	switch {
	case home.HasLine && away.HasLine:
		if home.Edge >= away.Edge {
			return in.HomeTeam, home.Edge, home.Price, true
		}
		return in.AwayTeam, away.Edge, away.Price, true
	case home.HasLine:
		return in.HomeTeam, home.Edge, home.Price, true
	case away.HasLine:
		return in.AwayTeam, away.Edge, away.Price, true
	}
	return "", 0, odds.BestPrice{}, false
}

// unitsForEdge applies the sizing tiers, forced to zero below the confidence
// floor
func (r *Recommender) unitsForEdge(edge, confidence float64) float64 {
	if confidence < r.cfg.MinConfidenceForBet {
		return 0
	}
	switch {
	case edge < unitTierHalf:
		return 0
	case edge < unitTierSingle:
		return 0.5
	case edge < unitTierDouble:
		return 1
	case edge <= unitTierTriple:
		return 2
	default:
		return 3
	}
}
