// Package odds converts market prices and computes model edge against them.
package odds

import (
	"math"

	"github.com/yourusername/court-vision/internal/models"
)

// AmericanToImplied converts American odds to the bookmaker's implied
// probability, inclusive of the vig.
// Example: -150 → 0.6 (60%), +150 → 0.4 (40%)
func AmericanToImplied(odds int) (float64, error) {
	if odds == 0 {
		return 0, models.ErrInvalidOdds
	}
	if odds > 0 {
		return 100.0 / (float64(odds) + 100.0), nil
	}
	abs := math.Abs(float64(odds))
	return abs / (abs + 100.0), nil
}

// AmericanToDecimal converts American odds to decimal (European) odds
func AmericanToDecimal(odds int) (float64, error) {
	if odds == 0 {
		return 0, models.ErrInvalidOdds
	}
	if odds > 0 {
		return 1.0 + float64(odds)/100.0, nil
	}
	return 1.0 + 100.0/math.Abs(float64(odds)), nil
}

// BetterPrice reports whether candidate pays more than current for the
// bettor. Higher American odds always pay better: +150 beats +120, and
// -105 beats -120.
func BetterPrice(candidate, current int) bool {
	return candidate > current
}
