package valuation

// projectionYears is the explicit DCF horizon: years 1-5 grow at the first
// CAGR, years 6-10 at the second.
const projectionYears = 10

// growthForYear returns the revenue growth rate for a projection year (1-based)
func growthForYear(a *Assumption, year int) float64 {
	if year <= 5 {
		return a.RevenueCAGRYears1To5
	}
	return a.RevenueCAGRYears6To10
}

// ProjectRevenue compounds the base revenue over the projection horizon.
// Each year compounds off the prior projected year, not off the base.
func ProjectRevenue(baseRevenue float64, a *Assumption) []float64 {
	out := make([]float64, 0, projectionYears)
	current := baseRevenue

	for year := 1; year <= projectionYears; year++ {
		current = current * (1 + growthForYear(a, year))
		out = append(out, current)
	}

	return out
}

// fcfFromNOPAT derives free cash flow per projected year from the revenue
// path: FCF = revenue * operatingMargin * (1 - taxRate) * (1 - reinvestmentRate).
func fcfFromNOPAT(revenuePath []float64, a *Assumption) []float64 {
	out := make([]float64, len(revenuePath))
	for i, rev := range revenuePath {
		nopat := rev * a.OperatingMargin * (1 - a.TaxRate)
		out[i] = nopat * (1 - a.ReinvestmentRate)
	}
	return out
}

// fcfFromOCFCapex derives free cash flow from the operating cash flow and
// capex bases, each compounding from the prior year with dampened elasticity
// to that year's revenue growth (0.8x for OCF, 0.7x for capex).
func fcfFromOCFCapex(ocfBase, capexBase float64, a *Assumption) []float64 {
	out := make([]float64, 0, projectionYears)
	ocf := ocfBase
	capex := capexBase

	for year := 1; year <= projectionYears; year++ {
		g := growthForYear(a, year)
		ocf = ocf * (1 + g*0.8)
		capex = capex * (1 + g*0.7)
		out = append(out, ocf-capex)
	}

	return out
}

// ProjectFCF returns the free-cash-flow series over the horizon and a note
// describing the method. With use_ocf_capex set and both bases known, each
// year takes the MINIMUM of the NOPAT-based and OCF/CAPEX-based estimates.
// That conservative bias is a deliberate business rule, not an averaging
// opportunity.
func ProjectFCF(revenuePath []float64, ocfBase, capexBase *float64, a *Assumption) ([]float64, string) {
	nopatFCF := fcfFromNOPAT(revenuePath, a)

	if !a.UseOCFCapex {
		return nopatFCF, "FCF = NOPAT-based with reinvestment rate."
	}

	if ocfBase == nil || capexBase == nil {
		return nopatFCF, "FCF = NOPAT-based (OCF/CAPEX base unavailable, method fell back)."
	}

	ocfFCF := fcfFromOCFCapex(*ocfBase, *capexBase, a)

	combined := make([]float64, len(nopatFCF))
	for i := range nopatFCF {
		combined[i] = min(nopatFCF[i], ocfFCF[i])
	}

	return combined, "FCF = min(NOPAT-based, OCF/CAPEX-based) per year (conservative)."
}
