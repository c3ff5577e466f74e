package insights

// Result is the synthesized insight report for one company and period
type Result struct {
	Headline  string   `json:"headline"`
	Summary   []string `json:"summary"`
	Risks     []string `json:"risks"`
	Watchlist []string `json:"watchlist"`
	Score     float64  `json:"score"`
}
