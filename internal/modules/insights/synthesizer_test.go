package insights

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/finsight/internal/modules/signals"
)

func TestSynthesizer_Partitioning(t *testing.T) {
	fired := []signals.Signal{
		{Title: "Double-digit growth", Detail: "Revenue YoY 15.0%", Weight: 0.7},
		{Title: "Cash-flow strain", Detail: "Operating cash flow negative in two consecutive periods", Weight: -0.9},
		{Title: "Elevated receivables", Detail: "Receivables/revenue at 0.30", Weight: -0.5},
	}

	result := NewSynthesizer().Synthesize(fired)

	// Summary carries every fired signal, strongest first.
	assert.Equal(t, []string{
		"Cash-flow strain: Operating cash flow negative in two consecutive periods",
		"Double-digit growth: Revenue YoY 15.0%",
		"Elevated receivables: Receivables/revenue at 0.30",
	}, result.Summary)

	// Risks are the negative-weight titles only.
	assert.Equal(t, []string{"Cash-flow strain", "Elevated receivables"}, result.Risks)

	// Watchlist holds the borderline signals (|weight| <= 0.6).
	assert.Equal(t, []string{"Elevated receivables"}, result.Watchlist)

	assert.InDelta(t, -0.7, result.Score, 1e-9)
}

func TestSynthesizer_HeadlineBands(t *testing.T) {
	tests := []struct {
		name    string
		signals []signals.Signal
		want    string
	}{
		{
			name: "favorable at score >= 1.0",
			signals: []signals.Signal{
				{Title: "Superior capital efficiency", Weight: 0.9},
				{Title: "Double-digit growth", Weight: 0.7},
			},
			want: "Favorable: Superior capital efficiency",
		},
		{
			name: "cautionary at score <= -1.0",
			signals: []signals.Signal{
				{Title: "Cash-flow strain", Weight: -0.9},
				{Title: "Leverage risk", Weight: -0.7},
			},
			want: "Cautionary: Cash-flow strain",
		},
		{
			name: "neutral in between",
			signals: []signals.Signal{
				{Title: "Double-digit growth", Weight: 0.7},
				{Title: "Free-cash-flow deficit", Weight: -0.6},
			},
			want: "Neutral: Double-digit growth",
		},
		{
			name: "no signals at all",
			want: "No notable signals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewSynthesizer().Synthesize(tt.signals)
			assert.Equal(t, tt.want, result.Headline)
		})
	}
}

func TestSynthesizer_ScoreSumsAllWeights(t *testing.T) {
	fired := []signals.Signal{
		{Title: "A", Weight: 0.8},
		{Title: "B", Weight: -0.5},
		{Title: "C", Weight: 0.9},
	}

	result := NewSynthesizer().Synthesize(fired)
	assert.InDelta(t, 1.2, result.Score, 1e-9)
}

func TestSynthesizer_Deterministic(t *testing.T) {
	fired := []signals.Signal{
		{Title: "Leverage risk", Detail: "d1", Weight: -0.7},
		{Title: "Double-digit growth", Detail: "d2", Weight: 0.7},
		{Title: "Demand slowdown", Detail: "d3", Weight: -0.8},
	}

	first := NewSynthesizer().Synthesize(fired)
	second := NewSynthesizer().Synthesize(fired)

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical results from identical input")
	}

	// Equal absolute weights order deterministically by title.
	assert.Equal(t, "Double-digit growth: d2", first.Summary[1])
	assert.Equal(t, "Leverage risk: d1", first.Summary[2])
}

func TestSynthesizer_InputNotMutated(t *testing.T) {
	fired := []signals.Signal{
		{Title: "B", Weight: -0.5},
		{Title: "A", Weight: 0.9},
	}

	NewSynthesizer().Synthesize(fired)

	assert.Equal(t, "B", fired[0].Title, "caller's slice must keep its order")
}
