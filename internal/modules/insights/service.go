package insights

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/modules/companies"
	"github.com/aristath/finsight/internal/modules/kpi"
	"github.com/aristath/finsight/internal/modules/ratios"
	"github.com/aristath/finsight/internal/modules/signals"
	"github.com/aristath/finsight/pkg/formulas"
)

// Service generates the insight report for a company/period: it assembles
// the KPI history, derived ratios and peer benchmarks into a signal
// evaluation context and synthesizes the result.
type Service struct {
	kpiRepo       *kpi.Repository
	companiesRepo *companies.Repository
	ratioEngine   *ratios.Engine
	signalEngine  *signals.Engine
	synthesizer   *Synthesizer
	log           zerolog.Logger
}

// NewService creates a new insights service
func NewService(kpiRepo *kpi.Repository, companiesRepo *companies.Repository, log zerolog.Logger) *Service {
	return &Service{
		kpiRepo:       kpiRepo,
		companiesRepo: companiesRepo,
		ratioEngine:   ratios.NewEngine(),
		signalEngine:  signals.NewEngine(),
		synthesizer:   NewSynthesizer(),
		log:           log.With().Str("service", "insights").Logger(),
	}
}

// Generate builds the insight report for a company at the given period.
// An empty period selects the most recent record.
func (s *Service) Generate(companyID int64, period string) (*Result, error) {
	history, err := s.kpiRepo.History(companyID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("no KPI history for company %d", companyID)
	}

	idx := len(history) - 1
	if period != "" {
		found := false
		for i := range history {
			if history[i].Period == period {
				idx = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("period %s not found for company %d", period, companyID)
		}
	}

	rows := s.ratioEngine.Compute(history)

	ctx := &signals.Context{
		Current:       &history[idx],
		CurrentRatios: &rows[idx],
	}
	if idx > 0 {
		ctx.Previous = &history[idx-1]
		ctx.PreviousRatios = &rows[idx-1]
	}

	if offset := history[idx].YoYOffset(); idx >= offset {
		ctx.InventoryYoY = formulas.PctChange(history[idx].Inventory, history[idx-offset].Inventory)
	}

	if peers, err := s.peerSnapshot(companyID); err != nil {
		// Peer benchmarks are optional; peer-relative rules skip without them.
		s.log.Warn().Err(err).Msg("Peer snapshot unavailable")
	} else {
		ctx.Peers = peers
	}

	fired := s.signalEngine.Evaluate(ctx)
	result := s.synthesizer.Synthesize(fired)

	s.log.Info().
		Int64("company_id", companyID).
		Str("period", history[idx].Period).
		Int("signals", len(fired)).
		Float64("score", result.Score).
		Msg("Generated insights")

	return &result, nil
}

// peerSnapshot aggregates the latest derived ratios of every other company
func (s *Service) peerSnapshot(companyID int64) (*ratios.PeerSnapshot, error) {
	all, err := s.companiesRepo.List()
	if err != nil {
		return nil, err
	}

	var latest []ratios.Row
	for _, company := range all {
		if company.ID == companyID {
			continue
		}

		history, err := s.kpiRepo.History(company.ID)
		if err != nil {
			return nil, err
		}
		if len(history) == 0 {
			continue
		}

		rows := s.ratioEngine.Compute(history)
		latest = append(latest, rows[len(rows)-1])
	}

	if len(latest) == 0 {
		return nil, nil
	}

	snapshot := ratios.BuildPeerSnapshot(latest)
	return &snapshot, nil
}
