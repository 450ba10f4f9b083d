package rating

import "sort"

// TeamRanking is one row of the rankings board
type TeamRanking struct {
	Rank        int     `json:"rank"`
	Team        string  `json:"team"`
	Rating      float64 `json:"rating"`
	GamesPlayed int     `json:"games_played"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Trend       float64 `json:"trend"` // rating change over the trailing window
}

// Rankings returns all tracked teams sorted by current rating descending,
// with a trailing-window trend per team
func (t *Table) Rankings() []TeamRanking {
	t.mu.RLock()
	entries := make([]*teamEntry, 0, len(t.teams))
	for _, e := range t.teams {
		entries = append(entries, e)
	}
	t.mu.RUnlock()

	rankings := make([]TeamRanking, 0, len(entries))
	for _, e := range entries {
		rec := e.snapshot()
		rankings = append(rankings, TeamRanking{
			Team:        rec.Team,
			Rating:      rec.Rating,
			GamesPlayed: rec.GamesPlayed,
			Wins:        rec.Wins,
			Losses:      rec.Losses,
			Trend:       rec.Trend(t.cfg.TrendWindow),
		})
	}

	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].Rating != rankings[j].Rating {
			return rankings[i].Rating > rankings[j].Rating
		}
		return rankings[i].Team < rankings[j].Team
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings
}
