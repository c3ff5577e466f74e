package kpi

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/clients/feed"
	"github.com/aristath/finsight/internal/domain"
	"github.com/aristath/finsight/internal/modules/companies"
)

// Service handles KPI ingestion from the market-data feed.
// The feed is the normalization boundary: by the time data reaches this
// service it is already in the canonical KpiRecord shape.
type Service struct {
	feed      *feed.Client
	repo      *Repository
	companies *companies.Repository
	log       zerolog.Logger
}

// NewService creates a new KPI ingestion service
func NewService(feedClient *feed.Client, repo *Repository, companiesRepo *companies.Repository, log zerolog.Logger) *Service {
	return &Service{
		feed:      feedClient,
		repo:      repo,
		companies: companiesRepo,
		log:       log.With().Str("service", "kpi").Logger(),
	}
}

// IngestResult summarizes one ingestion run for a ticker
type IngestResult struct {
	BatchID   string `json:"batch_id"`
	CompanyID int64  `json:"company_id"`
	Company   string `json:"company"`
	Ticker    string `json:"ticker"`
	Upserted  int    `json:"upserted"`
}

// IngestTicker fetches statements for a ticker and upserts them.
// nameOverride, when non-empty, wins over the feed's profile name.
func (s *Service) IngestTicker(ticker string, freq domain.Frequency, nameOverride string) (*IngestResult, error) {
	if s.feed == nil {
		return nil, fmt.Errorf("market-data feed is not configured")
	}

	batchID := uuid.NewString()
	log := s.log.With().Str("batch_id", batchID).Str("ticker", ticker).Logger()

	profile, statements, err := s.feed.GetStatements(ticker, freq)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch statements: %w", err)
	}

	if len(statements) == 0 {
		return nil, fmt.Errorf("feed returned no statements for %s", ticker)
	}

	name := nameOverride
	if name == "" && profile != nil {
		name = profile.Name
	}
	if name == "" {
		name = ticker
	}

	company, err := s.companies.Upsert(name, &ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert company: %w", err)
	}

	upserted := 0
	for _, stmt := range statements {
		rec := feed.ToKpiRecord(company.ID, stmt)
		if err := s.repo.Upsert(&rec); err != nil {
			log.Warn().Err(err).Str("period", stmt.Period).Msg("Skipping statement")
			continue
		}
		upserted++
	}

	log.Info().
		Str("company", name).
		Int("upserted", upserted).
		Msg("Ingestion batch complete")

	return &IngestResult{
		BatchID:   batchID,
		CompanyID: company.ID,
		Company:   name,
		Ticker:    ticker,
		Upserted:  upserted,
	}, nil
}

// RefreshAll re-ingests every company that has a ticker set
func (s *Service) RefreshAll(freq domain.Frequency) (int, error) {
	tracked, err := s.companies.ListWithTicker()
	if err != nil {
		return 0, fmt.Errorf("failed to list tracked companies: %w", err)
	}

	refreshed := 0
	for _, company := range tracked {
		if _, err := s.IngestTicker(*company.Ticker, freq, company.Name); err != nil {
			s.log.Error().Err(err).Str("ticker", *company.Ticker).Msg("Feed refresh failed")
			continue
		}
		refreshed++
	}

	return refreshed, nil
}
