package recommend

import "github.com/yourusername/court-vision/internal/factors"

// Confidence score bounds and term weights
const (
	confidenceBase  = 50.0
	confidenceFloor = 10.0
	confidenceCeil  = 95.0

	dataQualityWeight = 15.0
	alignmentWeight   = 15.0
	agreementMax      = 15.0

	rlmBonus = 5.0

	zeroDataPenalty   = 35.0
	sparseDataPenalty = 15.0
	sparseDataFloor   = 5
)

// ConfidenceInput carries the signals the scorer combines
type ConfidenceInput struct {
	Aggregation     factors.Aggregation
	EdgeMagnitude   float64 // absolute edge of the selected side, percent
	SimWinFraction  float64 // simulator home-win fraction
	HomeProbability float64 // blended model home win probability
}

// Confidence combines data completeness, cross-factor agreement, and edge
// magnitude into a bounded score on [10, 95]
func Confidence(in ConfidenceInput) float64 {
	agg := in.Aggregation
	total := len(agg.Results)
	if total == 0 {
		return confidenceFloor
	}

	dataQuality := float64(agg.DataAvailableCount) / float64(total)
	alignment := float64(abs(agg.HomeCount-agg.AwayCount)) / float64(total)

	score := confidenceBase +
		dataQuality*dataQualityWeight +
		alignment*alignmentWeight +
		edgeBonus(in.EdgeMagnitude) +
		agreementBonus(in.HomeProbability, in.SimWinFraction)

	if agg.ReverseLineMovement {
		score += rlmBonus
	}

	switch {
	case agg.DataAvailableCount == 0:
		score -= zeroDataPenalty
	case agg.DataAvailableCount < sparseDataFloor:
		score -= sparseDataPenalty
	}

	if score < confidenceFloor {
		return confidenceFloor
	}
	if score > confidenceCeil {
		return confidenceCeil
	}
	return score
}

// edgeBonus rewards larger edges in fixed tiers
func edgeBonus(edge float64) float64 {
	switch {
	case edge > 15:
		return 10
	case edge > 10:
		return 8
	case edge > 5:
		return 5
	default:
		return 0
	}
}

// agreementBonus rewards the simulator independently landing on the same side
// as the factor pipeline, scaled by how decisive the simulation was
func agreementBonus(modelProb, simFraction float64) float64 {
	sameSide := (modelProb > 0.5 && simFraction > 0.5) || (modelProb < 0.5 && simFraction < 0.5)
	if !sameSide {
		return 0
	}
	decisiveness := (simFraction - 0.5) * 4
	if decisiveness < 0 {
		decisiveness = -decisiveness
	}
	if decisiveness > 1 {
		decisiveness = 1
	}
	return agreementMax * decisiveness
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
