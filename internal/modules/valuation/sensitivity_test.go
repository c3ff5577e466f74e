package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSensitivityGrid_FullCrossProduct(t *testing.T) {
	fcf := []float64{100, 105, 110, 115, 120, 125, 130, 135, 140, 145}

	// Base WACC far above every growth value: no divergent cells.
	cells := SensitivityGrid(fcf, 0.10, 0.02, 0, 0, 100)

	// 5 WACC values x 3 growth values.
	assert.Len(t, cells, 15)

	for _, cell := range cells {
		assert.Greater(t, cell.WACC, cell.TerminalGrowth,
			"cell (%.4f, %.4f) should have been excluded", cell.WACC, cell.TerminalGrowth)
		assert.Greater(t, cell.ValuePerShare, 0.0)
	}
}

func TestSensitivityGrid_ExcludesDivergentCells(t *testing.T) {
	fcf := []float64{100, 105, 110, 115, 120, 125, 130, 135, 140, 145}

	// Base WACC 4% against base growth 3%: the low-WACC cells collide with
	// the higher growth values and must be dropped, not floored.
	cells := SensitivityGrid(fcf, 0.04, 0.03, 0, 0, 100)

	for _, cell := range cells {
		if cell.WACC <= cell.TerminalGrowth {
			t.Fatalf("Divergent cell (%.4f, %.4f) leaked into the grid", cell.WACC, cell.TerminalGrowth)
		}
	}
	assert.Less(t, len(cells), 15, "some cells must be excluded")
	assert.NotEmpty(t, cells)
}

func TestSensitivityGrid_ValueFallsAsWACCRises(t *testing.T) {
	fcf := []float64{100, 105, 110, 115, 120, 125, 130, 135, 140, 145}

	cells := SensitivityGrid(fcf, 0.10, 0.02, 0, 0, 100)

	// At fixed terminal growth, higher discount rates mean lower values.
	var prev *SensitivityCell
	for i := range cells {
		cell := cells[i]
		if cell.TerminalGrowth != 0.02 {
			continue
		}
		if prev != nil && cell.ValuePerShare >= prev.ValuePerShare {
			t.Errorf("Value did not fall from WACC %.4f to %.4f", prev.WACC, cell.WACC)
		}
		prev = &cell
	}
}
