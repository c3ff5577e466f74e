package valuation

import "math"

// npv discounts the cash-flow series at the given rate; the first entry is
// one year out: sum of cf_i / (1+rate)^(i+1).
func npv(cashflows []float64, rate float64) float64 {
	total := 0.0
	for i, cf := range cashflows {
		total += cf / math.Pow(1+rate, float64(i+1))
	}
	return total
}

// terminalValue is the Gordon-growth perpetuity off the final projected
// cash flow. Callers must ensure wacc > g; the divergent case is rejected
// upstream, never computed.
func terminalValue(lastCashflow, wacc, g float64) float64 {
	return lastCashflow * (1 + g) / (wacc - g)
}

// enterpriseToEquity converts enterprise value to equity value
func enterpriseToEquity(ev, cash, debt float64) float64 {
	return ev + cash - debt
}

// dcfEquityValue runs the full discounting chain for one (wacc, g) pair:
// NPV of the explicit horizon plus the discounted terminal value, converted
// to equity.
func dcfEquityValue(fcf []float64, wacc, g, cash, debt float64) float64 {
	tv := terminalValue(fcf[len(fcf)-1], wacc, g)
	ev := npv(fcf, wacc) + tv/math.Pow(1+wacc, float64(len(fcf)))
	return enterpriseToEquity(ev, cash, debt)
}
