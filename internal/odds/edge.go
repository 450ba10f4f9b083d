package odds

import (
	"fmt"

	"github.com/yourusername/court-vision/internal/models"
)

// BestPrice is the most favorable available price for one side
type BestPrice struct {
	Odds      int     `json:"odds"`
	Bookmaker string  `json:"bookmaker"`
	Implied   float64 `json:"implied"`
}

// SideEdge pairs a side's best price with the model's edge over it
type SideEdge struct {
	Price   BestPrice `json:"price"`
	Edge    float64   `json:"edge"` // percent: (model - market) / market * 100
	HasLine bool      `json:"has_line"`
}

// GameEdge holds both sides' independently computed edges.
// Each side's edge comes from that side's own best price; it is never derived
// from the other side, because the vig makes the two implied probabilities
// sum above 100%.
type GameEdge struct {
	Home SideEdge `json:"home"`
	Away SideEdge `json:"away"`
}

// BestHomePrice selects the highest home moneyline across bookmakers
func BestHomePrice(books []models.BookOdds) (BestPrice, bool) {
	return bestPrice(books, func(b models.BookOdds) int { return b.HomeMoneyline })
}

// BestAwayPrice selects the highest away moneyline across bookmakers
func BestAwayPrice(books []models.BookOdds) (BestPrice, bool) {
	return bestPrice(books, func(b models.BookOdds) int { return b.AwayMoneyline })
}

func bestPrice(books []models.BookOdds, price func(models.BookOdds) int) (BestPrice, bool) {
	best := BestPrice{}
	found := false
	for _, book := range books {
		if !book.HasMoneyline() {
			continue
		}
		p := price(book)
		if !found || BetterPrice(p, best.Odds) {
			implied, err := AmericanToImplied(p)
			if err != nil {
				continue
			}
			best = BestPrice{Odds: p, Bookmaker: book.Bookmaker, Implied: implied}
			found = true
		}
	}
	return best, found
}

// Edge computes the percentage edge of a model probability over a market
// implied probability
func Edge(modelProb, marketProb float64) (float64, error) {
	if marketProb <= 0 {
		return 0, fmt.Errorf("market probability must be positive: %w", models.ErrInvalidOdds)
	}
	return (modelProb - marketProb) / marketProb * 100.0, nil
}

// ComputeGameEdge computes both sides' edges from the game's odds snapshot.
// A side with no quotable line is marked HasLine=false and carries zero edge.
func ComputeGameEdge(books []models.BookOdds, homeProb, awayProb float64) GameEdge {
	result := GameEdge{}

	if best, ok := BestHomePrice(books); ok {
		edge, err := Edge(homeProb, best.Implied)
		if err == nil {
			result.Home = SideEdge{Price: best, Edge: edge, HasLine: true}
		}
	}
	if best, ok := BestAwayPrice(books); ok {
		edge, err := Edge(awayProb, best.Implied)
		if err == nil {
			result.Away = SideEdge{Price: best, Edge: edge, HasLine: true}
		}
	}
	return result
}
