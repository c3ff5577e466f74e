package domain

import "time"

// Frequency is the reporting cadence of a KPI record
type Frequency string

const (
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnual    Frequency = "annual"
)

// Company represents a business entity being analyzed
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Ticker    *string   `json:"ticker,omitempty"`
	Sector    *string   `json:"sector,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// KpiRecord is the canonical financial snapshot for one company and one
// reporting period. Every numeric field is optional: nil means "unreported",
// while a pointer to zero means the value was reported as zero. The analysis
// engines rely on that distinction and never collapse the two.
type KpiRecord struct {
	ID        int64     `json:"id,omitempty"`
	CompanyID int64     `json:"company_id"`
	Period    string    `json:"period"` // e.g. "2024-Q4" or "2024"
	Frequency Frequency `json:"freq"`

	// Income statement
	Revenue         *float64 `json:"revenue,omitempty"`
	GrossProfit     *float64 `json:"gross_profit,omitempty"`
	OperatingIncome *float64 `json:"operating_income,omitempty"`
	NetIncome       *float64 `json:"net_income,omitempty"`

	// Balance sheet
	TotalAssets      *float64 `json:"total_assets,omitempty"`
	TotalLiabilities *float64 `json:"total_liabilities,omitempty"`
	Equity           *float64 `json:"equity,omitempty"`
	Inventory        *float64 `json:"inventory,omitempty"`
	Receivables      *float64 `json:"receivables,omitempty"`
	Payables         *float64 `json:"payables,omitempty"`
	Cash             *float64 `json:"cash,omitempty"`
	Debt             *float64 `json:"debt,omitempty"`

	// Cash flow
	OperatingCashFlow  *float64 `json:"operating_cf,omitempty"`
	CapitalExpenditure *float64 `json:"capex,omitempty"`

	SharesOutstanding *float64 `json:"shares_outstanding,omitempty"`

	// Persisted derived metric: total_liabilities / total_assets * 100.
	// Computed once on upsert, never recomputed lazily.
	DebtRatio *float64 `json:"debt_ratio,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// ComputeDebtRatio fills DebtRatio from the balance sheet fields.
// Left nil when assets are unreported or zero.
func (k *KpiRecord) ComputeDebtRatio() {
	if k.TotalAssets == nil || *k.TotalAssets <= 0 || k.TotalLiabilities == nil {
		return
	}
	ratio := *k.TotalLiabilities / *k.TotalAssets * 100.0
	k.DebtRatio = &ratio
}

// YoYOffset returns how many records back the year-over-year comparison
// period sits: 4 for a quarterly series, 1 for an annual one.
func (k *KpiRecord) YoYOffset() int {
	if k.Frequency == FrequencyAnnual {
		return 1
	}
	return 4
}

// PeriodDays returns the number of days covered by one reporting period,
// used by balance-to-flow day ratios (DSO/DIO/DPO).
func (k *KpiRecord) PeriodDays() float64 {
	if k.Frequency == FrequencyAnnual {
		return 365
	}
	return 90
}
