package models

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation actions
const (
	ActionStrongBet = "STRONG BET"
	ActionLean      = "LEAN"
	ActionPass      = "PASS"
)

// SideValues holds a per-side pair of probabilities or edges
type SideValues struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// RankedFactor is a machine-readable contributor entry attached to a
// recommendation, ordered by importance
type RankedFactor struct {
	Name      string        `json:"name"`
	Advantage AdvantageSide `json:"advantage"`
	Weight    float64       `json:"weight"`
	Insight   string        `json:"insight"`
}

// Recommendation represents the sized betting action for a game
type Recommendation struct {
	Action        string         `json:"action" validate:"required,oneof='STRONG BET' 'LEAN' 'PASS'"`
	Side          string         `json:"side,omitempty"` // team abbreviation, empty on PASS
	Odds          int            `json:"odds,omitempty"` // best available American price
	Bookmaker     string         `json:"bookmaker,omitempty"`
	Units         float64        `json:"units"`
	RankedFactors []RankedFactor `json:"ranked_factors"`
	Narrative     string         `json:"narrative"`
}

// AnalysisInput bundles the fully-resolved inputs for one game's analysis.
// No I/O happens downstream of this structure.
type AnalysisInput struct {
	Game     *Game         `json:"game" validate:"required"`
	Injuries InjuryMap     `json:"injuries,omitempty"`
	News     []NewsArticle `json:"news,omitempty"`
	Factors  *FactorData   `json:"factors,omitempty"`
}

// AnalysisResult is the engine's complete output for one game
type AnalysisResult struct {
	GameID             uuid.UUID      `json:"game_id"`
	HomeTeam           string         `json:"home_team"`
	AwayTeam           string         `json:"away_team"`
	HomeWinProbability float64        `json:"home_win_probability"`
	AwayWinProbability float64        `json:"away_win_probability"`
	MarketImplied      SideValues     `json:"market_implied"`
	Edge               SideValues     `json:"edge"`
	Confidence         float64        `json:"confidence"`
	Recommendation     Recommendation `json:"recommendation"`
	Factors            []FactorResult `json:"factors"`
	Risks              []string       `json:"risks,omitempty"`
	Reasoning          string         `json:"reasoning"`
	Error              string         `json:"error,omitempty"` // set on batch stub results
	AnalyzedAt         time.Time      `json:"analyzed_at"`
}

// IsStub reports whether this result is a batch-failure placeholder
func (a *AnalysisResult) IsStub() bool {
	return a.Error != ""
}

// StubResult builds the minimal placeholder used when a single game's
// analysis fails during batch processing
func StubResult(game *Game, reason string) *AnalysisResult {
	result := &AnalysisResult{
		Confidence: 10,
		Recommendation: Recommendation{
			Action: ActionPass,
		},
		Error:      reason,
		AnalyzedAt: time.Now(),
	}
	if game != nil {
		result.GameID = game.ID
		if game.HomeTeam != nil {
			result.HomeTeam = game.HomeTeam.Abbreviation
		}
		if game.AwayTeam != nil {
			result.AwayTeam = game.AwayTeam.Abbreviation
		}
	}
	return result
}
