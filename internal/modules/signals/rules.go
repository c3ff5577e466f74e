package signals

import (
	"fmt"

	"github.com/aristath/finsight/internal/modules/ratios"
)

// Rule is one predicate + message pair. Eval returns the signal detail and
// whether the rule fired; a rule that cannot evaluate (missing input)
// returns fired=false.
type Rule struct {
	Title  string
	Weight float64
	Eval   func(ctx *Context) (string, bool)
}

// Rules is the canonical rule table. Evaluation is unconditional and
// order-independent: every matching rule fires, none short-circuits
// another. Thresholds are part of the contract.
var Rules = []Rule{
	{
		Title:  "Demand slowdown",
		Weight: -0.8,
		Eval: func(ctx *Context) (string, bool) {
			if ctx.CurrentRatios == nil || ctx.CurrentRatios.RevYoY == nil || ctx.InventoryYoY == nil {
				return "", false
			}
			if *ctx.CurrentRatios.RevYoY <= -10 && *ctx.InventoryYoY >= 10 {
				return fmt.Sprintf("Revenue YoY %.1f%% while inventory YoY %.1f%%",
					*ctx.CurrentRatios.RevYoY, *ctx.InventoryYoY), true
			}
			return "", false
		},
	},
	{
		Title:  "Leverage risk",
		Weight: -0.7,
		Eval: func(ctx *Context) (string, bool) {
			if ctx.Current == nil || ctx.Previous == nil ||
				ctx.Current.DebtRatio == nil || ctx.Previous.DebtRatio == nil {
				return "", false
			}
			delta := *ctx.Current.DebtRatio - *ctx.Previous.DebtRatio
			if delta >= 20 {
				return fmt.Sprintf("Debt ratio up %.1f percentage points vs prior period", delta), true
			}
			return "", false
		},
	},
	{
		Title:  "Cash-flow strain",
		Weight: -0.9,
		Eval: func(ctx *Context) (string, bool) {
			if ctx.Current == nil || ctx.Previous == nil ||
				ctx.Current.OperatingCashFlow == nil || ctx.Previous.OperatingCashFlow == nil {
				return "", false
			}
			if *ctx.Current.OperatingCashFlow < 0 && *ctx.Previous.OperatingCashFlow < 0 {
				return "Operating cash flow negative in two consecutive periods", true
			}
			return "", false
		},
	},
	{
		Title:  "Double-digit growth",
		Weight: 0.7,
		Eval: func(ctx *Context) (string, bool) {
			if ctx.CurrentRatios == nil || ctx.CurrentRatios.RevYoY == nil {
				return "", false
			}
			if *ctx.CurrentRatios.RevYoY > 10 {
				return fmt.Sprintf("Revenue YoY %.1f%%", *ctx.CurrentRatios.RevYoY), true
			}
			return "", false
		},
	},
	{
		Title:  "Above-peer profitability",
		Weight: 0.8,
		Eval: func(ctx *Context) (string, bool) {
			if ctx.CurrentRatios == nil || ctx.CurrentRatios.EbitMargin == nil {
				return "", false
			}
			peer := ctx.Peers.Stats(ratios.MetricEbitMargin)
			if peer == nil {
				return "", false
			}
			if *ctx.CurrentRatios.EbitMargin > peer.Median+5 {
				return fmt.Sprintf("EBIT margin %.1f%% vs peer median %.1f%%",
					*ctx.CurrentRatios.EbitMargin, peer.Median), true
			}
			return "", false
		},
	},
	{
		Title:  "Superior capital efficiency",
		Weight: 0.9,
		Eval: func(ctx *Context) (string, bool) {
			if ctx.CurrentRatios == nil || ctx.CurrentRatios.Roic == nil {
				return "", false
			}
			peer := ctx.Peers.Stats(ratios.MetricRoic)
			if peer == nil {
				return "", false
			}
			if *ctx.CurrentRatios.Roic > peer.Median*1.2 {
				return fmt.Sprintf("ROIC %.1f%% vs peer median %.1f%%",
					*ctx.CurrentRatios.Roic, peer.Median), true
			}
			return "", false
		},
	},
	{
		Title:  "Free-cash-flow deficit",
		Weight: -0.6,
		Eval: func(ctx *Context) (string, bool) {
			if ctx.CurrentRatios == nil || ctx.CurrentRatios.FcfTtm == nil {
				return "", false
			}
			if *ctx.CurrentRatios.FcfTtm < 0 {
				return "Trailing four-period operating cash flow is negative", true
			}
			return "", false
		},
	},
	{
		Title:  "Elevated receivables",
		Weight: -0.5,
		Eval: func(ctx *Context) (string, bool) {
			if ctx.Current == nil || ctx.Current.Receivables == nil ||
				ctx.Current.Revenue == nil || *ctx.Current.Revenue == 0 {
				return "", false
			}
			ratio := *ctx.Current.Receivables / *ctx.Current.Revenue
			if ratio > 0.25 {
				return fmt.Sprintf("Receivables/revenue at %.2f", ratio), true
			}
			return "", false
		},
	},
	{
		Title:  "Long cash-conversion cycle",
		Weight: -0.6,
		Eval: func(ctx *Context) (string, bool) {
			ccc := ratios.CashConversionCycle(ctx.Current)
			if ccc == nil {
				return "", false
			}
			if *ccc > 90 {
				return fmt.Sprintf("Cash conversion cycle at %.0f days", *ccc), true
			}
			return "", false
		},
	},
}
