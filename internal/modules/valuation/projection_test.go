package valuation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRevenue_TwoStageCompounding(t *testing.T) {
	asm := DefaultAssumption()
	path := ProjectRevenue(1000, &asm)

	require.Len(t, path, projectionYears)

	// Years 1-5 compound at 8%, years 6-10 at 4%.
	assert.InDelta(t, 1080.0, path[0], 1e-9)
	assert.InDelta(t, 1000*1.08*1.08, path[1], 1e-9)
	assert.InDelta(t, path[4]*1.04, path[5], 1e-9)
	assert.InDelta(t, path[8]*1.04, path[9], 1e-9)
}

func TestProjectFCF_TakesMinimumOfBothMethods(t *testing.T) {
	asm := DefaultAssumption()
	path := ProjectRevenue(1000, &asm)

	ocf := 200.0
	capex := 60.0
	combined, note := ProjectFCF(path, &ocf, &capex, &asm)

	nopat := fcfFromNOPAT(path, &asm)
	ocfBased := fcfFromOCFCapex(ocf, capex, &asm)

	require.Len(t, combined, projectionYears)
	for i := range combined {
		expected := nopat[i]
		if ocfBased[i] < expected {
			expected = ocfBased[i]
		}
		assert.InDelta(t, expected, combined[i], 1e-9, "year %d", i+1)

		// The combined series never exceeds either estimate.
		assert.LessOrEqual(t, combined[i], nopat[i]+1e-9)
		assert.LessOrEqual(t, combined[i], ocfBased[i]+1e-9)
	}

	assert.Contains(t, note, "min(")
}

func TestProjectFCF_FallsBackWithoutBases(t *testing.T) {
	asm := DefaultAssumption()
	path := ProjectRevenue(1000, &asm)

	fcf, note := ProjectFCF(path, nil, nil, &asm)

	expected := fcfFromNOPAT(path, &asm)
	assert.Equal(t, expected, fcf)
	assert.True(t, strings.Contains(note, "fell back"), "note should flag the fallback: %q", note)
}

func TestProjectFCF_NOPATMethodSelectedExplicitly(t *testing.T) {
	asm := DefaultAssumption()
	asm.UseOCFCapex = false
	path := ProjectRevenue(1000, &asm)

	ocf := 200.0
	capex := 60.0
	fcf, _ := ProjectFCF(path, &ocf, &capex, &asm)

	assert.Equal(t, fcfFromNOPAT(path, &asm), fcf)
}

func TestFcfFromOCFCapex_DampenedElasticity(t *testing.T) {
	asm := DefaultAssumption()
	fcf := fcfFromOCFCapex(200, 60, &asm)

	// Year 1: OCF 200*(1+0.08*0.8)=212.8, capex 60*(1+0.08*0.7)=63.36
	assert.InDelta(t, 212.8-63.36, fcf[0], 1e-9)
}
