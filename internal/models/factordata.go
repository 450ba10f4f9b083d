package models

// FactorData is the optional pre-fetched sub-data bundle consumed by the
// factor bank. Each sub-record is independently optional; a nil pointer means
// the data was not resolved and the corresponding factor degrades to neutral.
type FactorData struct {
	HeadToHead    *HeadToHeadRecord `json:"head_to_head,omitempty"`
	Rest          *RestProfile      `json:"rest,omitempty"`
	Clutch        *ClutchRecord     `json:"clutch,omitempty"`
	QuarterSplits *QuarterSplits    `json:"quarter_splits,omitempty"`
	ATS           *ATSRecord        `json:"ats,omitempty"`
	LineMovement  *LineMovement     `json:"line_movement,omitempty"`
	PublicBetting *PublicBetting    `json:"public_betting,omitempty"`
	Situational   *SituationalFlags `json:"situational,omitempty"`
	Referee       *RefereeProfile   `json:"referee,omitempty"`
}

// HeadToHeadRecord summarizes recent meetings between the two teams
type HeadToHeadRecord struct {
	HomeWins          int     `json:"home_wins"`
	AwayWins          int     `json:"away_wins"`
	AverageMargin     float64 `json:"average_margin"` // positive favors home
	LastMeetingMargin float64 `json:"last_meeting_margin"`
}

// RestProfile captures schedule fatigue for both sides
type RestProfile struct {
	HomeRestDays   int  `json:"home_rest_days"`
	AwayRestDays   int  `json:"away_rest_days"`
	HomeBackToBack bool `json:"home_back_to_back"`
	AwayBackToBack bool `json:"away_back_to_back"`
}

// ClutchRecord captures performance in games decided by five points or fewer
type ClutchRecord struct {
	HomeCloseWins   int `json:"home_close_wins"`
	HomeCloseLosses int `json:"home_close_losses"`
	AwayCloseWins   int `json:"away_close_wins"`
	AwayCloseLosses int `json:"away_close_losses"`
}

// QuarterSplits captures first/second half scoring margins per side
type QuarterSplits struct {
	HomeFirstHalfMargin  float64 `json:"home_first_half_margin"`
	HomeSecondHalfMargin float64 `json:"home_second_half_margin"`
	AwayFirstHalfMargin  float64 `json:"away_first_half_margin"`
	AwaySecondHalfMargin float64 `json:"away_second_half_margin"`
}

// ATSRecord captures against-the-spread results for both sides
type ATSRecord struct {
	HomeCovers int `json:"home_covers"`
	HomeFails  int `json:"home_fails"`
	AwayCovers int `json:"away_covers"`
	AwayFails  int `json:"away_fails"`
}

// CoverRate returns the cover percentage for the given counts, or 0.5 when
// no games are recorded
func CoverRate(covers, fails int) float64 {
	games := covers + fails
	if games == 0 {
		return 0.5
	}
	return float64(covers) / float64(games)
}

// LineMovement captures how the spread has moved since open
type LineMovement struct {
	OpeningSpread float64 `json:"opening_spread"`
	CurrentSpread float64 `json:"current_spread"`
	Variance      float64 `json:"variance"` // stddev across book snapshots
}

// Shift returns the signed movement since open (positive = toward the away side)
func (l *LineMovement) Shift() float64 {
	return l.CurrentSpread - l.OpeningSpread
}

// PublicBetting captures the public ticket/money split on the home side
type PublicBetting struct {
	HomeTicketPercent float64 `json:"home_ticket_percent" validate:"gte=0,lte=100"`
	HomeMoneyPercent  float64 `json:"home_money_percent" validate:"gte=0,lte=100"`
}

// SituationalFlags marks motivation and scheduling situations
type SituationalFlags struct {
	HomeRevengeGame  bool `json:"home_revenge_game"`
	AwayRevengeGame  bool `json:"away_revenge_game"`
	HomePlayoffPush  bool `json:"home_playoff_push"`
	AwayPlayoffPush  bool `json:"away_playoff_push"`
	AwayLongRoadTrip bool `json:"away_long_road_trip"`
	HomeLetdownSpot  bool `json:"home_letdown_spot"`
}

// RefereeProfile captures tendencies for the assigned crew chief
type RefereeProfile struct {
	Name          string  `json:"name"`
	AvgTotal      float64 `json:"avg_total"`
	HomeWinRate   float64 `json:"home_win_rate" validate:"gte=0,lte=1"`
	FoulsPerGame  float64 `json:"fouls_per_game"`
}
