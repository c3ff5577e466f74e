package valuation

import "math"

// Band half-widths and step for the two-variable sensitivity grid: WACC
// sweeps ±2 points in 1-point steps, terminal growth ±1 point.
const (
	waccBand   = 0.02
	waccStep   = 0.01
	growthBand = 0.01
)

// SensitivityGrid recomputes the DCF value per share across a cross-product
// of WACC and terminal-growth values around the base pair. Cells where
// wacc <= g are divergent and omitted entirely — the grid never carries
// infinities or NaNs.
func SensitivityGrid(fcf []float64, baseWACC, baseGrowth, cash, debt, shares float64) []SensitivityCell {
	cells := []SensitivityCell{}

	for wacc := baseWACC - waccBand; wacc <= baseWACC+waccBand+1e-9; wacc += waccStep {
		for _, g := range []float64{baseGrowth - growthBand, baseGrowth, baseGrowth + growthBand} {
			if wacc <= g {
				continue
			}

			equity := dcfEquityValue(fcf, wacc, g, cash, debt)
			cells = append(cells, SensitivityCell{
				WACC:           round4(wacc),
				TerminalGrowth: round4(g),
				ValuePerShare:  equity / shares,
			})
		}
	}

	return cells
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
