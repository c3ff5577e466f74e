package valuation

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/finsight/internal/domain"
	"github.com/aristath/finsight/pkg/logger"
)

func testEngine() *Engine {
	return NewEngine(logger.New(logger.Config{Level: "error", Pretty: false}))
}

func baseHistory() []domain.KpiRecord {
	fp := func(v float64) *float64 { return &v }
	return []domain.KpiRecord{{
		Period:             "2024",
		Frequency:          domain.FrequencyAnnual,
		Revenue:            fp(1000),
		NetIncome:          fp(100),
		OperatingIncome:    fp(150),
		OperatingCashFlow:  fp(200),
		CapitalExpenditure: fp(60),
		Cash:               fp(50),
		Debt:               fp(30),
		SharesOutstanding:  fp(100),
	}}
}

func hasNote(notes []string, substr string) bool {
	for _, n := range notes {
		if strings.Contains(n, substr) {
			return true
		}
	}
	return false
}

func TestEngine_Run_ReferenceScenario(t *testing.T) {
	asm := DefaultAssumption()
	out, err := testEngine().Run(baseHistory(), asm)
	require.NoError(t, err)

	require.NotNil(t, out.WACC)
	assert.InDelta(t, 0.0799, *out.WACC, 1e-9)

	// Reproduce the DCF chain independently.
	path := ProjectRevenue(1000, &asm)
	ocf, capex := 200.0, 60.0
	fcf, _ := ProjectFCF(path, &ocf, &capex, &asm)
	wantDCF := dcfEquityValue(fcf, 0.0799, asm.TerminalGrowth, 50, 30) / 100

	require.NotNil(t, out.DCFValuePerShare)
	assert.InDelta(t, wantDCF, *out.DCFValuePerShare, 1e-6)

	require.NotNil(t, out.MultiplesValuePerShare)
	require.NotNil(t, out.BlendedValuePerShare)

	// Exact 70/30 blend, always between the two sides.
	wantBlend := 0.7**out.DCFValuePerShare + 0.3**out.MultiplesValuePerShare
	assert.InDelta(t, wantBlend, *out.BlendedValuePerShare, 1e-9)

	lo := math.Min(*out.DCFValuePerShare, *out.MultiplesValuePerShare)
	hi := math.Max(*out.DCFValuePerShare, *out.MultiplesValuePerShare)
	assert.GreaterOrEqual(t, *out.BlendedValuePerShare, lo-1e-9)
	assert.LessOrEqual(t, *out.BlendedValuePerShare, hi+1e-9)

	assert.NotEmpty(t, out.Sensitivity)
	assert.True(t, hasNote(out.Notes, "Blended = 70% DCF + 30% multiples"))
}

func TestEngine_Run_Deterministic(t *testing.T) {
	asm := DefaultAssumption()
	engine := testEngine()

	first, err := engine.Run(baseHistory(), asm)
	require.NoError(t, err)
	second, err := engine.Run(baseHistory(), asm)
	require.NoError(t, err)

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected bit-identical output from identical input")
	}
}

func TestEngine_Run_DivergentTerminalGrowth(t *testing.T) {
	asm := DefaultAssumption()
	asm.TerminalGrowth = 0.20 // exceeds the 0.0799 WACC

	out, err := testEngine().Run(baseHistory(), asm)
	require.NoError(t, err)

	assert.Nil(t, out.DCFValuePerShare, "DCF must be blocked when WACC <= g")
	assert.Empty(t, out.Sensitivity)
	assert.True(t, hasNote(out.Notes, "terminal value diverges"))

	// Multiples-only output still works; the blend falls back to it.
	require.NotNil(t, out.MultiplesValuePerShare)
	require.NotNil(t, out.BlendedValuePerShare)
	assert.InDelta(t, *out.MultiplesValuePerShare, *out.BlendedValuePerShare, 1e-9)
	assert.True(t, hasNote(out.Notes, "blended equals multiples value"))
}

func TestEngine_Run_MissingShares(t *testing.T) {
	history := baseHistory()
	history[0].SharesOutstanding = nil

	out, err := testEngine().Run(history, DefaultAssumption())
	require.NoError(t, err)

	assert.Nil(t, out.DCFValuePerShare)
	assert.Nil(t, out.MultiplesValuePerShare)
	assert.Nil(t, out.BlendedValuePerShare)
	assert.True(t, hasNote(out.Notes, "per-share values unavailable"))

	// The F-Score is data-driven and still reported.
	assert.GreaterOrEqual(t, out.FScoreApplicable, 1)
}

func TestEngine_Run_SharesOverrideWins(t *testing.T) {
	history := baseHistory()
	history[0].SharesOutstanding = nil

	asm := DefaultAssumption()
	shares := 100.0
	asm.SharesOutstanding = &shares

	out, err := testEngine().Run(history, asm)
	require.NoError(t, err)
	assert.NotNil(t, out.DCFValuePerShare)
}

func TestEngine_Run_InvalidAssumptions(t *testing.T) {
	asm := DefaultAssumption()
	asm.TaxRate = 1.5

	out, err := testEngine().Run(baseHistory(), asm)
	require.NoError(t, err)

	assert.Nil(t, out.WACC)
	assert.Nil(t, out.DCFValuePerShare)
	assert.Nil(t, out.BlendedValuePerShare)
	assert.True(t, hasNote(out.Notes, "Invalid assumption"))
}

func TestEngine_Run_EmptyHistory(t *testing.T) {
	_, err := testEngine().Run(nil, DefaultAssumption())
	assert.Error(t, err)
}

func TestEngine_Run_UnknownPeriodFallsBackToLatest(t *testing.T) {
	asm := DefaultAssumption()
	asm.Period = "2019"

	out, err := testEngine().Run(baseHistory(), asm)
	require.NoError(t, err)

	assert.True(t, hasNote(out.Notes, "not found; using latest period 2024"))
	assert.NotNil(t, out.DCFValuePerShare)
}

func TestEngine_Run_PeriodSelectionHidesLaterRecords(t *testing.T) {
	fp := func(v float64) *float64 { return &v }

	history := baseHistory()
	history = append(history, domain.KpiRecord{
		Period:            "2025",
		Frequency:         domain.FrequencyAnnual,
		Revenue:           fp(5000),
		SharesOutstanding: fp(100),
	})

	asm := DefaultAssumption()
	asm.Period = "2024"

	out, err := testEngine().Run(history, asm)
	require.NoError(t, err)

	// Valuation must be based on the 2024 revenue of 1000, not 2025's 5000.
	path := ProjectRevenue(1000, &asm)
	ocf, capex := 200.0, 60.0
	fcf, _ := ProjectFCF(path, &ocf, &capex, &asm)
	wantDCF := dcfEquityValue(fcf, 0.0799, asm.TerminalGrowth, 50, 30) / 100

	require.NotNil(t, out.DCFValuePerShare)
	assert.InDelta(t, wantDCF, *out.DCFValuePerShare, 1e-6)
}

func TestEngine_Run_HigherBetaLowersDCF(t *testing.T) {
	engine := testEngine()

	low := DefaultAssumption()
	high := DefaultAssumption()
	high.Beta = 1.5

	outLow, err := engine.Run(baseHistory(), low)
	require.NoError(t, err)
	outHigh, err := engine.Run(baseHistory(), high)
	require.NoError(t, err)

	require.NotNil(t, outLow.DCFValuePerShare)
	require.NotNil(t, outHigh.DCFValuePerShare)
	assert.Greater(t, *outHigh.WACC, *outLow.WACC)
	assert.Less(t, *outHigh.DCFValuePerShare, *outLow.DCFValuePerShare)
}

func TestEngine_Run_MultiplesRoundTrip(t *testing.T) {
	// With only the P/E multiple configured the output reverse-solves the
	// peer multiple exactly: PE = value * shares / netIncome.
	asm := DefaultAssumption()
	asm.PeerPFCF = nil
	asm.PeerEVEBIT = nil

	out, err := testEngine().Run(baseHistory(), asm)
	require.NoError(t, err)

	require.NotNil(t, out.MultiplesValuePerShare)
	impliedPE := *out.MultiplesValuePerShare * 100 / 100 // shares=100, netIncome=100
	assert.InDelta(t, *asm.PeerPE, impliedPE, 1e-9)
}

func TestEngine_Run_MissingBaseRevenueSkipsDCFOnly(t *testing.T) {
	history := baseHistory()
	history[0].Revenue = nil

	out, err := testEngine().Run(history, DefaultAssumption())
	require.NoError(t, err)

	assert.Nil(t, out.DCFValuePerShare)
	assert.True(t, hasNote(out.Notes, "Base revenue missing"))

	// P/E and P/FCF multiples still apply from reported metrics.
	require.NotNil(t, out.MultiplesValuePerShare)
	require.NotNil(t, out.BlendedValuePerShare)
}
