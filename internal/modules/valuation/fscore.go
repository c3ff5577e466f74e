package valuation

import "github.com/aristath/finsight/internal/domain"

// FScoreResult is the Piotroski financial-health score. Score counts the
// satisfied tests; Applicable counts the tests that had enough data to
// evaluate, so the score always reads against a reduced denominator when
// inputs are missing.
type FScoreResult struct {
	Score      int `json:"score"`
	Applicable int `json:"applicable"`
}

// fscoreTest is one binary health test. ok reports whether the test could
// be evaluated at all; pass only matters when ok is true.
type fscoreTest func(cur, prev *domain.KpiRecord) (pass, ok bool)

// The nine standard Piotroski tests: profitability (4), leverage/liquidity/
// dilution (3), operating efficiency (2). Order matches the conventional
// presentation; evaluation is independent per test.
var fscoreTests = []fscoreTest{
	// Positive net income
	func(cur, _ *domain.KpiRecord) (bool, bool) {
		if cur.NetIncome == nil {
			return false, false
		}
		return *cur.NetIncome > 0, true
	},
	// Positive operating cash flow
	func(cur, _ *domain.KpiRecord) (bool, bool) {
		if cur.OperatingCashFlow == nil {
			return false, false
		}
		return *cur.OperatingCashFlow > 0, true
	},
	// Improving return on assets
	func(cur, prev *domain.KpiRecord) (bool, bool) {
		curROA := returnOnAssets(cur)
		prevROA := returnOnAssets(prev)
		if curROA == nil || prevROA == nil {
			return false, false
		}
		return *curROA > *prevROA, true
	},
	// Cash flow quality: operating cash flow exceeds net income
	func(cur, _ *domain.KpiRecord) (bool, bool) {
		if cur.OperatingCashFlow == nil || cur.NetIncome == nil {
			return false, false
		}
		return *cur.OperatingCashFlow > *cur.NetIncome, true
	},
	// Decreasing leverage
	func(cur, prev *domain.KpiRecord) (bool, bool) {
		curLev := leverage(cur)
		prevLev := leverage(prev)
		if curLev == nil || prevLev == nil {
			return false, false
		}
		return *curLev < *prevLev, true
	},
	// Improving current ratio (proxied from reported working-capital lines)
	func(cur, prev *domain.KpiRecord) (bool, bool) {
		curCR := currentRatioProxy(cur)
		prevCR := currentRatioProxy(prev)
		if curCR == nil || prevCR == nil {
			return false, false
		}
		return *curCR > *prevCR, true
	},
	// No new share issuance
	func(cur, prev *domain.KpiRecord) (bool, bool) {
		if cur == nil || prev == nil ||
			cur.SharesOutstanding == nil || prev.SharesOutstanding == nil ||
			*cur.SharesOutstanding <= 0 || *prev.SharesOutstanding <= 0 {
			return false, false
		}
		return *cur.SharesOutstanding <= *prev.SharesOutstanding, true
	},
	// Improving gross margin
	func(cur, prev *domain.KpiRecord) (bool, bool) {
		curGM := grossMargin(cur)
		prevGM := grossMargin(prev)
		if curGM == nil || prevGM == nil {
			return false, false
		}
		return *curGM > *prevGM, true
	},
	// Improving asset turnover
	func(cur, prev *domain.KpiRecord) (bool, bool) {
		curAT := assetTurnover(cur)
		prevAT := assetTurnover(prev)
		if curAT == nil || prevAT == nil {
			return false, false
		}
		return *curAT > *prevAT, true
	},
}

// ComputeFScore evaluates the nine tests against the last record of the
// history and its predecessor. Tests whose inputs are missing are excluded
// from the applicable count rather than scored as failures.
func ComputeFScore(history []domain.KpiRecord) FScoreResult {
	if len(history) == 0 {
		return FScoreResult{}
	}

	cur := &history[len(history)-1]
	var prev *domain.KpiRecord
	if len(history) >= 2 {
		prev = &history[len(history)-2]
	}

	result := FScoreResult{}
	for _, test := range fscoreTests {
		pass, ok := test(cur, prev)
		if !ok {
			continue
		}
		result.Applicable++
		if pass {
			result.Score++
		}
	}

	return result
}

func returnOnAssets(rec *domain.KpiRecord) *float64 {
	if rec == nil || rec.NetIncome == nil || rec.TotalAssets == nil || *rec.TotalAssets <= 0 {
		return nil
	}
	v := *rec.NetIncome / *rec.TotalAssets
	return &v
}

func leverage(rec *domain.KpiRecord) *float64 {
	if rec == nil || rec.TotalLiabilities == nil || rec.TotalAssets == nil || *rec.TotalAssets <= 0 {
		return nil
	}
	v := *rec.TotalLiabilities / *rec.TotalAssets
	return &v
}

// currentRatioProxy approximates the current ratio as
// (cash + receivables + inventory) / payables. The KPI schema carries no
// dedicated current-asset/liability lines, so the test is skipped unless
// payables are reported and at least one short-term asset line exists.
func currentRatioProxy(rec *domain.KpiRecord) *float64 {
	if rec == nil || rec.Payables == nil || *rec.Payables <= 0 {
		return nil
	}

	assets := 0.0
	reported := false
	for _, v := range []*float64{rec.Cash, rec.Receivables, rec.Inventory} {
		if v != nil {
			assets += *v
			reported = true
		}
	}
	if !reported {
		return nil
	}

	v := assets / *rec.Payables
	return &v
}

func grossMargin(rec *domain.KpiRecord) *float64 {
	if rec == nil || rec.GrossProfit == nil || rec.Revenue == nil || *rec.Revenue == 0 {
		return nil
	}
	v := *rec.GrossProfit / *rec.Revenue
	return &v
}

func assetTurnover(rec *domain.KpiRecord) *float64 {
	if rec == nil || rec.Revenue == nil || rec.TotalAssets == nil || *rec.TotalAssets <= 0 {
		return nil
	}
	v := *rec.Revenue / *rec.TotalAssets
	return &v
}
