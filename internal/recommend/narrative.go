package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/court-vision/internal/factors"
	"github.com/yourusername/court-vision/internal/models"
)

const maxNarrativeDrivers = 3

// rankFactors orders the available, non-neutral factor results by their
// impact-derived weight, most important first
func rankFactors(agg factors.Aggregation) []models.RankedFactor {
	type scored struct {
		result models.FactorResult
		score  float64
	}

	candidates := make([]scored, 0, len(agg.Results))
	for _, r := range agg.Results {
		if !r.DataAvailable || r.Advantage == models.AdvantageNeutral {
			continue
		}
		candidates = append(candidates, scored{result: r, score: r.Impact * r.Weight})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	ranked := make([]models.RankedFactor, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, models.RankedFactor{
			Name:      c.result.Name,
			Advantage: c.result.Advantage,
			Weight:    c.result.Weight,
			Insight:   c.result.Insight,
		})
	}
	return ranked
}

// narrative composes the templated explanation citing the top contributors
func (r *Recommender) narrative(in Input, rec models.Recommendation, sideEdge float64) string {
	if rec.Action == models.ActionPass {
		return fmt.Sprintf("No actionable edge on %s @ %s (best side %.1f%%, need %.1f%%)",
			in.AwayTeam, in.HomeTeam, sideEdge, r.profile.LeanEdge)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s (%+d at %s): %.1f%% edge over the market, confidence %.0f",
		rec.Action, rec.Side, rec.Odds, rec.Bookmaker, sideEdge, in.Confidence)

	drivers := rec.RankedFactors
	if len(drivers) > maxNarrativeDrivers {
		drivers = drivers[:maxNarrativeDrivers]
	}
	if len(drivers) > 0 {
		insights := make([]string, 0, len(drivers))
		for _, d := range drivers {
			insights = append(insights, d.Insight)
		}
		fmt.Fprintf(&sb, ". Drivers: %s", strings.Join(insights, "; "))
	}
	if in.Aggregation.ReverseLineMovement {
		sb.WriteString(". Reverse line movement detected, sharp money agrees")
	}
	return sb.String()
}
