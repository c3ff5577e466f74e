package insights

import (
	"fmt"
	"math"
	"sort"

	"github.com/aristath/finsight/internal/modules/signals"
)

// Sentiment bands for the headline. A net score at or above the favorable
// threshold reads favorable, at or below its negation cautionary, anything
// between neutral.
const favorableThreshold = 1.0

// Synthesizer aggregates fired signals into a readable report.
// Deterministic: the same signal list always produces the same result.
type Synthesizer struct {
	// Signals whose absolute weight is at or below this bound land on the
	// watchlist (borderline observations worth monitoring).
	WatchWeight float64
}

// NewSynthesizer creates a synthesizer with the default watchlist bound
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{WatchWeight: 0.6}
}

// Synthesize partitions signals by polarity, sums their weights into a
// sentiment score and derives the headline.
func (s *Synthesizer) Synthesize(fired []signals.Signal) Result {
	result := Result{
		Summary:   []string{},
		Risks:     []string{},
		Watchlist: []string{},
	}

	// Stable presentation order: strongest signals first, ties by title.
	sorted := make([]signals.Signal, len(fired))
	copy(sorted, fired)
	sort.SliceStable(sorted, func(i, j int) bool {
		ai, aj := math.Abs(sorted[i].Weight), math.Abs(sorted[j].Weight)
		if ai != aj {
			return ai > aj
		}
		return sorted[i].Title < sorted[j].Title
	})

	score := 0.0
	for _, sig := range sorted {
		score += sig.Weight
		result.Summary = append(result.Summary, fmt.Sprintf("%s: %s", sig.Title, sig.Detail))

		if sig.Weight < 0 {
			result.Risks = append(result.Risks, sig.Title)
		}
		if math.Abs(sig.Weight) <= s.WatchWeight {
			result.Watchlist = append(result.Watchlist, sig.Title)
		}
	}

	result.Score = score
	result.Headline = headline(score, sorted)
	return result
}

func headline(score float64, sorted []signals.Signal) string {
	if len(sorted) == 0 {
		return "No notable signals"
	}

	lead := sorted[0].Title
	switch {
	case score >= favorableThreshold:
		return fmt.Sprintf("Favorable: %s", lead)
	case score <= -favorableThreshold:
		return fmt.Sprintf("Cautionary: %s", lead)
	default:
		return fmt.Sprintf("Neutral: %s", lead)
	}
}
