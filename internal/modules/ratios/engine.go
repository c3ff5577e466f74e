package ratios

import (
	"github.com/aristath/finsight/internal/domain"
	"github.com/aristath/finsight/pkg/formulas"
)

// Engine derives period ratios from an ordered KPI history.
// It is a pure computation: no I/O, no shared state, safe to call
// concurrently for different companies.
type Engine struct{}

// NewEngine creates a new ratio engine
func NewEngine() *Engine {
	return &Engine{}
}

// Compute returns one derived-ratio row per input record, in input order.
// The caller guarantees period ordering; gaps in the series are tolerated
// and simply leave the affected lookback ratios undefined.
func (e *Engine) Compute(history []domain.KpiRecord) []Row {
	out := make([]Row, 0, len(history))

	for i := range history {
		rec := &history[i]

		row := Row{
			Period:            rec.Period,
			Frequency:         rec.Frequency,
			Revenue:           rec.Revenue,
			OperatingIncome:   rec.OperatingIncome,
			NetIncome:         rec.NetIncome,
			OperatingCashFlow: rec.OperatingCashFlow,
			DebtRatio:         rec.DebtRatio,
		}

		row.EbitMargin = percentOf(rec.OperatingIncome, rec.Revenue)
		row.NetMargin = percentOf(rec.NetIncome, rec.Revenue)

		if i >= 1 {
			row.RevQoQ = formulas.PctChange(rec.Revenue, history[i-1].Revenue)
		}

		yoyOffset := rec.YoYOffset()
		if i >= yoyOffset {
			row.RevYoY = formulas.PctChange(rec.Revenue, history[i-yoyOffset].Revenue)
		}

		row.FcfTtm = trailingSum(history, i, 4, func(k *domain.KpiRecord) *float64 {
			return k.OperatingCashFlow
		})

		// Simplified ROIC proxy: net income over total assets. Not textbook
		// ROIC (no NOPAT, no invested-capital adjustment).
		row.Roic = percentOf(rec.NetIncome, rec.TotalAssets)

		out = append(out, row)
	}

	return out
}

// CashConversionCycle returns DSO + DIO - DPO in days for one record,
// or nil when any component is not computable. COGS is approximated as
// revenue minus gross profit.
func CashConversionCycle(rec *domain.KpiRecord) *float64 {
	if rec == nil || rec.Revenue == nil {
		return nil
	}

	var cogs *float64
	if rec.GrossProfit != nil {
		c := *rec.Revenue - *rec.GrossProfit
		cogs = &c
	}

	days := rec.PeriodDays()
	dso := daysRatio(rec.Receivables, rec.Revenue, days)
	dio := daysRatio(rec.Inventory, cogs, days)
	dpo := daysRatio(rec.Payables, cogs, days)

	if dso == nil || dio == nil || dpo == nil {
		return nil
	}

	ccc := *dso + *dio - *dpo
	return &ccc
}

// percentOf returns numer / denom * 100, or nil when undefined
func percentOf(numer, denom *float64) *float64 {
	if numer == nil || denom == nil || *denom == 0 {
		return nil
	}
	v := *numer / *denom * 100.0
	return &v
}

// daysRatio converts a balance and a per-period flow into days, e.g.
// DSO = receivables / revenue * days
func daysRatio(balance, flow *float64, days float64) *float64 {
	if balance == nil || flow == nil || *flow == 0 {
		return nil
	}
	v := *balance / *flow * days
	return &v
}

// trailingSum sums the selected field over the trailing n records ending at
// index i. Undefined unless all n values exist and are reported.
func trailingSum(history []domain.KpiRecord, i, n int, field func(*domain.KpiRecord) *float64) *float64 {
	if i+1 < n {
		return nil
	}

	sum := 0.0
	for j := i - n + 1; j <= i; j++ {
		v := field(&history[j])
		if v == nil {
			return nil
		}
		sum += *v
	}
	return &sum
}
