package valuation

import "fmt"

// multiplesInput carries the base-year metrics the peer multiples apply to
type multiplesInput struct {
	NetIncome *float64 // base net income
	FCF       *float64 // trailing or first projected free cash flow
	EBIT      *float64 // first projected EBIT
	Cash      float64
	Debt      float64
	Shares    float64 // > 0, validated by the caller
}

// multiplesValuePerShare applies each configured peer multiple to its
// underlying metric, producing an independent per-share estimate, and
// averages the available ones. A multiple is skipped when its peer value is
// absent or its metric is missing or non-positive (a negative-earnings P/E
// is meaningless); skips are recorded in notes.
func multiplesValuePerShare(a *Assumption, in multiplesInput, notes *[]string) *float64 {
	var estimates []float64

	if a.PeerPE != nil {
		if in.NetIncome != nil && *in.NetIncome > 0 {
			estimates = append(estimates, *a.PeerPE**in.NetIncome/in.Shares)
		} else {
			*notes = append(*notes, "P/E multiple skipped: net income missing or non-positive.")
		}
	}

	if a.PeerPFCF != nil {
		if in.FCF != nil && *in.FCF > 0 {
			estimates = append(estimates, *a.PeerPFCF**in.FCF/in.Shares)
		} else {
			*notes = append(*notes, "P/FCF multiple skipped: free cash flow missing or non-positive.")
		}
	}

	if a.PeerEVEBIT != nil {
		if in.EBIT != nil && *in.EBIT > 0 {
			ev := *a.PeerEVEBIT * *in.EBIT
			estimates = append(estimates, enterpriseToEquity(ev, in.Cash, in.Debt)/in.Shares)
		} else {
			*notes = append(*notes, "EV/EBIT multiple skipped: EBIT missing or non-positive.")
		}
	}

	if len(estimates) == 0 {
		return nil
	}

	sum := 0.0
	for _, est := range estimates {
		sum += est
	}
	avg := sum / float64(len(estimates))

	*notes = append(*notes, fmt.Sprintf("Multiples value averages %d estimate(s).", len(estimates)))
	return &avg
}
