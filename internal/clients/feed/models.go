package feed

// Statement is one reporting period as delivered by the market-data feed.
// Fields the feed did not report are null in the wire JSON and stay nil here;
// the distinction between "reported zero" and "not reported" is preserved all
// the way into the KPI store.
type Statement struct {
	Period            string   `json:"period"`
	Frequency         string   `json:"freq"`
	Revenue           *float64 `json:"revenue"`
	GrossProfit       *float64 `json:"gross_profit"`
	OperatingIncome   *float64 `json:"operating_income"`
	NetIncome         *float64 `json:"net_income"`
	TotalAssets       *float64 `json:"total_assets"`
	TotalLiabilities  *float64 `json:"total_liabilities"`
	Equity            *float64 `json:"equity"`
	Inventory         *float64 `json:"inventory"`
	Receivables       *float64 `json:"receivables"`
	Payables          *float64 `json:"payables"`
	Cash              *float64 `json:"cash"`
	Debt              *float64 `json:"debt"`
	OperatingCashFlow *float64 `json:"operating_cf"`
	Capex             *float64 `json:"capex"`
	SharesOutstanding *float64 `json:"shares_outstanding"`
}

// CompanyProfile is the feed's descriptive record for a ticker
type CompanyProfile struct {
	Ticker   string  `json:"ticker"`
	Name     string  `json:"name"`
	Sector   *string `json:"sector"`
	Currency *string `json:"currency"`
}

// statementsResponse is the feed's envelope for statement queries
type statementsResponse struct {
	Profile    *CompanyProfile `json:"profile"`
	Statements []Statement     `json:"statements"`
	Error      *string         `json:"error"`
}
