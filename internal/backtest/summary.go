package backtest

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GameGrade is one game's graded replay row
type GameGrade struct {
	GameID      uuid.UUID       `json:"game_id"`
	Matchup     string          `json:"matchup"`
	Action      string          `json:"action"`
	Side        string          `json:"side,omitempty"`
	Units       float64         `json:"units"`
	Confidence  float64         `json:"confidence"`
	HomeCovered bool            `json:"home_covered"`
	Outcome     string          `json:"outcome"`
	Profit      decimal.Decimal `json:"profit"`
	Note        string          `json:"note,omitempty"`
}

// Summary aggregates a full backtest run
type Summary struct {
	TotalGames int         `json:"total_games"`
	TotalBets  int         `json:"total_bets"`
	Wins       int         `json:"wins"`
	Losses     int         `json:"losses"`
	WinRate    float64     `json:"win_rate"`
	Grades     []GameGrade `json:"grades"`

	StartingBankroll decimal.Decimal `json:"starting_bankroll"`
	EndingBankroll   decimal.Decimal `json:"ending_bankroll"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	ROI              float64         `json:"roi"`
}

// NewSummary initializes a summary with the starting bankroll
func NewSummary(initialBankroll float64) *Summary {
	start := decimal.NewFromFloat(initialBankroll)
	return &Summary{
		StartingBankroll: start,
		EndingBankroll:   start,
	}
}

// Record folds one graded game into the running totals
func (s *Summary) Record(grade GameGrade) {
	s.TotalGames++
	s.Grades = append(s.Grades, grade)

	switch grade.Outcome {
	case OutcomeWin:
		s.TotalBets++
		s.Wins++
	case OutcomeLoss:
		s.TotalBets++
		s.Losses++
	}
	s.EndingBankroll = s.EndingBankroll.Add(grade.Profit)
}

// Finalize computes the derived rates once all games are recorded
func (s *Summary) Finalize() {
	if s.TotalBets > 0 {
		s.WinRate = float64(s.Wins) / float64(s.TotalBets)
	}
	s.NetProfit = s.EndingBankroll.Sub(s.StartingBankroll)
	if !s.StartingBankroll.IsZero() {
		roi, _ := s.NetProfit.Div(s.StartingBankroll).Float64()
		s.ROI = roi
	}
}
