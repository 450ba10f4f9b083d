package models

// NewsArticle represents an already-scored news item supplied by a collaborator.
// Sentiment is in [-1, 1]; Impact is 0-10.
type NewsArticle struct {
	Headline    string   `json:"headline" validate:"required"`
	Description string   `json:"description"`
	Teams       []string `json:"teams"`
	Sentiment   float64  `json:"sentiment" validate:"gte=-1,lte=1"`
	Impact      float64  `json:"impact" validate:"gte=0,lte=10"`
}

// Mentions reports whether the article references the given team
func (a *NewsArticle) Mentions(team string) bool {
	for _, t := range a.Teams {
		if t == team {
			return true
		}
	}
	return false
}
