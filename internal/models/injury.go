package models

import "strings"

// Injury represents one player's injury report entry
type Injury struct {
	Player string `json:"player" validate:"required"`
	Status string `json:"status" validate:"required"`
	Type   string `json:"type"`
}

// InjuryMap maps a team abbreviation to its current injury report
type InjuryMap map[string][]Injury

// statusWeights approximate the expected availability cost per report status
var statusWeights = map[string]float64{
	"out":          1.0,
	"doubtful":     0.75,
	"questionable": 0.4,
	"probable":     0.1,
	"day-to-day":   0.3,
}

// ImpactScore sums status-weighted injury impact for a team. Unknown statuses
// count at the questionable weight.
func (m InjuryMap) ImpactScore(team string) float64 {
	score := 0.0
	for _, injury := range m[team] {
		weight, ok := statusWeights[strings.ToLower(injury.Status)]
		if !ok {
			weight = statusWeights["questionable"]
		}
		score += weight
	}
	return score
}
