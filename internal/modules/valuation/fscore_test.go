package valuation

import (
	"testing"

	"github.com/aristath/finsight/internal/domain"
)

func fullRecord(period string, scale float64) domain.KpiRecord {
	fp := func(v float64) *float64 { return &v }
	return domain.KpiRecord{
		Period:            period,
		Frequency:         domain.FrequencyAnnual,
		Revenue:           fp(1000 * scale),
		GrossProfit:       fp(500 * scale),
		NetIncome:         fp(100 * scale),
		OperatingCashFlow: fp(150 * scale),
		TotalAssets:       fp(2000),
		TotalLiabilities:  fp(800 / scale),
		Cash:              fp(200 * scale),
		Receivables:       fp(100 * scale),
		Inventory:         fp(100 * scale),
		Payables:          fp(120),
		SharesOutstanding: fp(100),
	}
}

func TestComputeFScore_AllNineApplicable(t *testing.T) {
	// The current year improves on every dimension against the prior year.
	cur := fullRecord("2024", 1.2)
	betterMargin := 700.0 // gross margin 58% vs prior year's 50%
	cur.GrossProfit = &betterMargin

	history := []domain.KpiRecord{
		fullRecord("2023", 1.0),
		cur,
	}

	result := ComputeFScore(history)

	if result.Applicable != 9 {
		t.Errorf("Expected 9 applicable tests, got %d", result.Applicable)
	}
	if result.Score != 9 {
		t.Errorf("Expected perfect score 9, got %d", result.Score)
	}
}

func TestComputeFScore_BoundedZeroToNine(t *testing.T) {
	// Every dimension deteriorates: score 0, still fully applicable.
	worse := fullRecord("2024", 0.5)
	neg := -10.0
	worse.NetIncome = &neg
	worse.OperatingCashFlow = &neg
	moreShares := 120.0
	worse.SharesOutstanding = &moreShares

	history := []domain.KpiRecord{
		fullRecord("2023", 1.0),
		worse,
	}

	result := ComputeFScore(history)

	if result.Score < 0 || result.Score > 9 {
		t.Fatalf("Score %d outside [0, 9]", result.Score)
	}
	if result.Score > result.Applicable {
		t.Fatalf("Score %d exceeds applicable count %d", result.Score, result.Applicable)
	}
	if result.Score != 0 {
		t.Errorf("Expected score 0 for an all-worse year, got %d", result.Score)
	}
}

func TestComputeFScore_ReducedDenominator(t *testing.T) {
	fp := func(v float64) *float64 { return &v }

	// Only income-statement lines reported: the balance-sheet and
	// prior-period tests are excluded, never scored as failures.
	history := []domain.KpiRecord{{
		Period:            "2024",
		Frequency:         domain.FrequencyAnnual,
		NetIncome:         fp(100),
		OperatingCashFlow: fp(150),
	}}

	result := ComputeFScore(history)

	// Positive net income, positive OCF, OCF > net income.
	if result.Applicable != 3 {
		t.Errorf("Expected 3 applicable tests, got %d", result.Applicable)
	}
	if result.Score != 3 {
		t.Errorf("Expected score 3, got %d", result.Score)
	}
}

func TestComputeFScore_SinglePeriodSkipsComparisons(t *testing.T) {
	history := []domain.KpiRecord{fullRecord("2024", 1.0)}

	result := ComputeFScore(history)

	// Without a prior period only the 3 single-period tests can run.
	if result.Applicable != 3 {
		t.Errorf("Expected 3 applicable tests without a prior period, got %d", result.Applicable)
	}
}

func TestComputeFScore_EmptyHistory(t *testing.T) {
	result := ComputeFScore(nil)

	if result.Score != 0 || result.Applicable != 0 {
		t.Errorf("Expected zero-value result, got %+v", result)
	}
}
