package valuation

// ComputeWACC derives the weighted-average cost of capital from the
// assumption bundle:
//
//	CostOfEquity = riskFreeRate + beta * equityRiskPremium   (CAPM)
//	CostOfDebt   = preTaxCostOfDebt * (1 - taxRate)          (after tax)
//	WACC         = E/(D+E) * CoE + D/(D+E) * CoD
//
// with D/(D+E) = targetDebtRatio and E/(D+E) = 1 - targetDebtRatio.
func ComputeWACC(a *Assumption) float64 {
	costOfEquity := a.RiskFreeRate + a.Beta*a.EquityRiskPremium
	costOfDebtAfterTax := a.PreTaxCostOfDebt * (1 - a.TaxRate)

	debtWeight := a.TargetDebtRatio
	equityWeight := 1 - a.TargetDebtRatio

	return equityWeight*costOfEquity + debtWeight*costOfDebtAfterTax
}
