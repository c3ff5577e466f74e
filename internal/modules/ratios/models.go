package ratios

import "github.com/aristath/finsight/internal/domain"

// Row holds the derived ratios for one reporting period. Every derived
// value is optional: a nil field means the ratio was not computable from
// the inputs (missing operand or zero denominator), never an error.
//
// Units: margins, growth rates and ROIC are percentages (12.5 = 12.5%);
// fcf_ttm is in the same currency unit as the underlying KPI values.
type Row struct {
	Period    string           `json:"period"`
	Frequency domain.Frequency `json:"freq"`

	// Carried through from the KPI record for downstream consumers
	Revenue           *float64 `json:"revenue,omitempty"`
	OperatingIncome   *float64 `json:"operating_income,omitempty"`
	NetIncome         *float64 `json:"net_income,omitempty"`
	OperatingCashFlow *float64 `json:"operating_cf,omitempty"`
	DebtRatio         *float64 `json:"debt_ratio,omitempty"`

	// Derived
	EbitMargin *float64 `json:"ebit_margin,omitempty"`
	NetMargin  *float64 `json:"net_margin,omitempty"`
	RevYoY     *float64 `json:"rev_yoy,omitempty"`
	RevQoQ     *float64 `json:"rev_qoq,omitempty"`
	FcfTtm     *float64 `json:"fcf_ttm,omitempty"`
	Roic       *float64 `json:"roic,omitempty"`
}
