package valuation

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/domain"
)

// Blend weights: the DCF value dominates, peer multiples temper it
const (
	blendWeightDCF       = 0.7
	blendWeightMultiples = 0.3
)

// Engine runs the full valuation: base-value inference, WACC, cash-flow
// projection, DCF, peer multiples, blend, F-Score and sensitivity grid.
// It is a pure function of (history, assumption): no I/O, no caller state
// mutated, safe for concurrent runs.
type Engine struct {
	log zerolog.Logger
}

// NewEngine creates a new valuation engine
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		log: log.With().Str("module", "valuation").Logger(),
	}
}

// Run values the company described by the KPI history under the given
// assumptions. Degradations are reported through Output.Notes; an error is
// returned only when there is nothing to value at all.
func (e *Engine) Run(history []domain.KpiRecord, asm Assumption) (*Output, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("no KPI history")
	}

	out := &Output{Notes: []string{}, Sensitivity: []SensitivityCell{}}

	// Select the target record; records after it are invisible to the run.
	idx := len(history) - 1
	if asm.Period != "" {
		found := false
		for i := range history {
			if history[i].Period == asm.Period {
				idx = i
				found = true
				break
			}
		}
		if !found {
			out.Notes = append(out.Notes,
				fmt.Sprintf("Period %s not found; using latest period %s.", asm.Period, history[idx].Period))
		}
	}
	window := history[:idx+1]
	kpi := &window[len(window)-1]

	// Step 10: F-Score is data-driven and survives assumption problems
	fscore := ComputeFScore(window)
	out.FScore = fscore.Score
	out.FScoreApplicable = fscore.Applicable

	if problems := asm.Problems(); len(problems) > 0 {
		for _, p := range problems {
			out.Notes = append(out.Notes, "Invalid assumption: "+p+".")
		}
		return out, nil
	}

	// Step 1: base-value inference, every inferred value traceable by note
	baseRevenue := infer(out, "Base revenue", asm.BaseRevenue, kpi.Revenue)
	ocfBase := infer(out, "OCF base", asm.OCFOverride, kpi.OperatingCashFlow)
	capexBase := infer(out, "Capex base", asm.CapexOverride, kpi.CapitalExpenditure)
	shares := infer(out, "Shares outstanding", asm.SharesOutstanding, kpi.SharesOutstanding)
	cash := inferOrZero(out, "Cash", asm.CashAndEquivalents, kpi.Cash)
	debt := inferOrZero(out, "Debt", asm.TotalDebt, kpi.Debt)

	// Step 2: WACC
	wacc := ComputeWACC(&asm)
	out.WACC = &wacc
	out.Notes = append(out.Notes,
		fmt.Sprintf("WACC=%.4f, terminal growth=%.4f.", wacc, asm.TerminalGrowth))
	out.Notes = append(out.Notes,
		fmt.Sprintf("Inputs: margin=%.4f, tax=%.4f, reinvestment=%.4f.",
			asm.OperatingMargin, asm.TaxRate, asm.ReinvestmentRate))

	if shares == nil || *shares <= 0 {
		out.Notes = append(out.Notes,
			"Shares outstanding missing or zero: per-share values unavailable. Provide shares_outstanding.")
		return out, nil
	}

	// Steps 3-4: revenue and free-cash-flow projection
	var revenuePath, fcf []float64
	if baseRevenue != nil && *baseRevenue > 0 {
		revenuePath = ProjectRevenue(*baseRevenue, &asm)

		var methodNote string
		fcf, methodNote = ProjectFCF(revenuePath, ocfBase, capexBase, &asm)
		out.Notes = append(out.Notes, methodNote)
	} else {
		out.Notes = append(out.Notes,
			"Base revenue missing or zero: cash-flow projection and DCF skipped. Provide base_revenue.")
	}

	// Steps 5-7 plus the Step 11 grid, only when the terminal value converges
	if fcf != nil {
		if wacc <= asm.TerminalGrowth {
			out.Notes = append(out.Notes, fmt.Sprintf(
				"Invalid assumption: WACC (%.4f) <= terminal growth (%.4f), terminal value diverges; DCF skipped.",
				wacc, asm.TerminalGrowth))
		} else {
			equity := dcfEquityValue(fcf, wacc, asm.TerminalGrowth, cash, debt)
			dcfPerShare := equity / *shares
			out.DCFValuePerShare = &dcfPerShare

			out.Sensitivity = SensitivityGrid(fcf, wacc, asm.TerminalGrowth, cash, debt, *shares)
		}
	}

	// Step 8: peer multiples against base-year metrics
	base := e.multiplesBase(out, kpi, revenuePath, fcf, ocfBase, capexBase, &asm)
	base.Cash = cash
	base.Debt = debt
	base.Shares = *shares
	out.MultiplesValuePerShare = multiplesValuePerShare(&asm, base, &out.Notes)

	// Step 9: blend
	out.BlendedValuePerShare = blend(out)

	e.log.Debug().
		Int64("company_id", asm.CompanyID).
		Str("period", kpi.Period).
		Msg("Valuation run complete")

	return out, nil
}

// multiplesBase assembles the metrics the peer multiples apply to, falling
// back to projection-derived values when the KPI record is silent.
func (e *Engine) multiplesBase(out *Output, kpi *domain.KpiRecord, revenuePath, fcf []float64, ocfBase, capexBase *float64, asm *Assumption) multiplesInput {
	in := multiplesInput{}

	in.NetIncome = kpi.NetIncome
	if in.NetIncome == nil && len(revenuePath) > 0 {
		nopat := revenuePath[0] * asm.OperatingMargin * (1 - asm.TaxRate)
		in.NetIncome = &nopat
		out.Notes = append(out.Notes, "Net income unreported: first-year NOPAT used for P/E.")
	}

	if ocfBase != nil && capexBase != nil {
		trailing := *ocfBase - *capexBase
		in.FCF = &trailing
	} else if len(fcf) > 0 {
		in.FCF = &fcf[0]
		out.Notes = append(out.Notes, "Trailing FCF unavailable: first projected year used for P/FCF.")
	}

	if len(revenuePath) > 0 {
		ebit := revenuePath[0] * asm.OperatingMargin
		in.EBIT = &ebit
	} else if kpi.OperatingIncome != nil {
		in.EBIT = kpi.OperatingIncome
		out.Notes = append(out.Notes, "Projection unavailable: reported operating income used for EV/EBIT.")
	}

	return in
}

// blend combines the DCF and multiples values 70/30. With only one side
// available the blend equals that side, documented in notes; with neither
// it stays absent.
func blend(out *Output) *float64 {
	dcf := out.DCFValuePerShare
	mult := out.MultiplesValuePerShare

	switch {
	case dcf != nil && mult != nil:
		v := blendWeightDCF**dcf + blendWeightMultiples**mult
		out.Notes = append(out.Notes, "Blended = 70% DCF + 30% multiples.")
		return &v
	case dcf != nil:
		v := *dcf
		out.Notes = append(out.Notes, "Multiples value unavailable: blended equals DCF value.")
		return &v
	case mult != nil:
		v := *mult
		out.Notes = append(out.Notes, "DCF value unavailable: blended equals multiples value.")
		return &v
	default:
		return nil
	}
}

// infer implements the override-then-KPI precedence of Step 1. A note is
// recorded whenever the KPI fallback supplied the value or nothing did.
func infer(out *Output, name string, override, kpiValue *float64) *float64 {
	if override != nil {
		return override
	}
	if kpiValue != nil {
		out.Notes = append(out.Notes, fmt.Sprintf("%s taken from KPI record.", name))
		return kpiValue
	}
	out.Notes = append(out.Notes, fmt.Sprintf("%s not supplied and not in KPI record.", name))
	return nil
}

// inferOrZero is infer for balance-sheet adjustments that default to zero
// when unknown (cash, debt)
func inferOrZero(out *Output, name string, override, kpiValue *float64) float64 {
	v := infer(out, name, override, kpiValue)
	if v == nil {
		out.Notes = append(out.Notes, fmt.Sprintf("%s defaulted to 0.", name))
		return 0
	}
	return *v
}
