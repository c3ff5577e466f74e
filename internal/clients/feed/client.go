package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/domain"
)

// Client is a market-data feed client. The feed delivers already-normalized
// financial statements; no parsing of unstructured documents happens here.
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new feed client
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("client", "feed").Logger(),
	}
}

// GetStatements fetches all statements for a ticker at the given frequency.
// Results are sorted by period ascending.
func (c *Client) GetStatements(ticker string, freq domain.Frequency) (*CompanyProfile, []Statement, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, nil, fmt.Errorf("ticker is required")
	}

	endpoint := fmt.Sprintf("%s/statements?ticker=%s&freq=%s",
		c.baseURL, url.QueryEscape(ticker), url.QueryEscape(string(freq)))

	resp, err := c.client.Get(endpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read feed response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("feed returned status %d for %s", resp.StatusCode, ticker)
	}

	var parsed statementsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed response: %w", err)
	}

	if parsed.Error != nil {
		return nil, nil, fmt.Errorf("feed error for %s: %s", ticker, *parsed.Error)
	}

	sort.Slice(parsed.Statements, func(i, j int) bool {
		return parsed.Statements[i].Period < parsed.Statements[j].Period
	})

	c.log.Debug().
		Str("ticker", ticker).
		Int("statements", len(parsed.Statements)).
		Msg("Fetched statements from feed")

	return parsed.Profile, parsed.Statements, nil
}

// ToKpiRecord converts a feed statement into the canonical KPI record shape
func ToKpiRecord(companyID int64, s Statement) domain.KpiRecord {
	freq := domain.FrequencyQuarterly
	if s.Frequency == string(domain.FrequencyAnnual) {
		freq = domain.FrequencyAnnual
	}

	return domain.KpiRecord{
		CompanyID:          companyID,
		Period:             s.Period,
		Frequency:          freq,
		Revenue:            s.Revenue,
		GrossProfit:        s.GrossProfit,
		OperatingIncome:    s.OperatingIncome,
		NetIncome:          s.NetIncome,
		TotalAssets:        s.TotalAssets,
		TotalLiabilities:   s.TotalLiabilities,
		Equity:             s.Equity,
		Inventory:          s.Inventory,
		Receivables:        s.Receivables,
		Payables:           s.Payables,
		Cash:               s.Cash,
		Debt:               s.Debt,
		OperatingCashFlow:  s.OperatingCashFlow,
		CapitalExpenditure: s.Capex,
		SharesOutstanding:  s.SharesOutstanding,
	}
}
