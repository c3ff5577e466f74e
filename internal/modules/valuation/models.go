package valuation

import "fmt"

// Assumption is the input parameter bundle for a valuation run.
// All rate-type fields are fractional (0.08 = 8%), never percentages.
// Pointer fields are optional overrides: nil means "infer from the most
// recent KPI record".
type Assumption struct {
	CompanyID int64  `json:"company_id"`
	Period    string `json:"period,omitempty"` // empty selects the latest record

	// Growth / margin / tax / reinvestment
	BaseRevenue           *float64 `json:"base_revenue,omitempty"`
	OperatingMargin       float64  `json:"operating_margin"`
	TaxRate               float64  `json:"tax_rate"`
	RevenueCAGRYears1To5  float64  `json:"revenue_cagr_years_1_5"`
	RevenueCAGRYears6To10 float64  `json:"revenue_cagr_years_6_10"`
	TerminalGrowth        float64  `json:"terminal_growth"`
	ReinvestmentRate      float64  `json:"reinvestment_rate"`

	// Cash-flow projection method
	UseOCFCapex   bool     `json:"use_ocf_capex"`
	OCFOverride   *float64 `json:"ocf_override,omitempty"`
	CapexOverride *float64 `json:"capex_override,omitempty"`

	// Cost of capital
	RiskFreeRate      float64 `json:"risk_free_rate"`
	EquityRiskPremium float64 `json:"equity_risk_premium"`
	Beta              float64 `json:"beta"`
	PreTaxCostOfDebt  float64 `json:"pre_tax_cost_of_debt"`
	TargetDebtRatio   float64 `json:"target_debt_ratio"` // D/(D+E)

	// Peer multiples
	PeerPE     *float64 `json:"peer_pe,omitempty"`
	PeerPFCF   *float64 `json:"peer_pfcf,omitempty"`
	PeerEVEBIT *float64 `json:"peer_ev_ebit,omitempty"`

	// Direct overrides bypassing KPI-derived defaults
	SharesOutstanding  *float64 `json:"shares_outstanding,omitempty"`
	CashAndEquivalents *float64 `json:"cash_and_equiv,omitempty"`
	TotalDebt          *float64 `json:"total_debt,omitempty"`
}

// DefaultAssumption returns the standard parameter set. Request decoding
// starts from these values so an omitted field keeps its default.
func DefaultAssumption() Assumption {
	pe := 20.0
	pfcf := 18.0
	evEbit := 14.0

	return Assumption{
		OperatingMargin:       0.15,
		TaxRate:               0.21,
		RevenueCAGRYears1To5:  0.08,
		RevenueCAGRYears6To10: 0.04,
		TerminalGrowth:        0.02,
		ReinvestmentRate:      0.25,
		UseOCFCapex:           true,
		RiskFreeRate:          0.04,
		EquityRiskPremium:     0.05,
		Beta:                  1.0,
		PreTaxCostOfDebt:      0.05,
		TargetDebtRatio:       0.20,
		PeerPE:                &pe,
		PeerPFCF:              &pfcf,
		PeerEVEBIT:            &evEbit,
	}
}

// Problems returns human-readable descriptions of parameters outside their
// sane domain. A non-empty result flags the whole bundle invalid.
func (a *Assumption) Problems() []string {
	var out []string

	if a.TaxRate < 0 || a.TaxRate >= 1 {
		out = append(out, fmt.Sprintf("tax rate %.4f outside [0, 1)", a.TaxRate))
	}
	if a.TargetDebtRatio < 0 || a.TargetDebtRatio >= 1 {
		out = append(out, fmt.Sprintf("target debt ratio %.4f outside [0, 1)", a.TargetDebtRatio))
	}
	if a.ReinvestmentRate < 0 || a.ReinvestmentRate > 1 {
		out = append(out, fmt.Sprintf("reinvestment rate %.4f outside [0, 1]", a.ReinvestmentRate))
	}
	if a.Beta < 0 {
		out = append(out, fmt.Sprintf("beta %.4f is negative", a.Beta))
	}
	if a.SharesOutstanding != nil && *a.SharesOutstanding < 0 {
		out = append(out, "shares outstanding override is negative")
	}

	return out
}

// SensitivityCell is one point of the two-variable sensitivity grid
type SensitivityCell struct {
	WACC           float64 `json:"wacc"`
	TerminalGrowth float64 `json:"g"`
	ValuePerShare  float64 `json:"value_per_share"`
}

// Output is the immutable valuation result. Per-share values are nil when
// that valuation path was not computable; Notes documents every default,
// fallback and degradation applied along the way.
type Output struct {
	DCFValuePerShare       *float64          `json:"dcf_value_per_share,omitempty"`
	MultiplesValuePerShare *float64          `json:"multiples_value_per_share,omitempty"`
	BlendedValuePerShare   *float64          `json:"blended_value_per_share,omitempty"`
	WACC                   *float64          `json:"wacc,omitempty"`
	FScore                 int               `json:"f_score"`
	FScoreApplicable       int               `json:"f_score_applicable"`
	Notes                  []string          `json:"notes"`
	Sensitivity            []SensitivityCell `json:"sensitivity"`
}
