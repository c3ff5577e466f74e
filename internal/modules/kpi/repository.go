package kpi

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/domain"
)

// Repository handles KPI record persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new KPI repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "kpi").Logger(),
	}
}

const kpiColumns = `id, company_id, period, freq, revenue, gross_profit, operating_income,
	net_income, total_assets, total_liabilities, equity, inventory, receivables,
	payables, cash, debt, operating_cf, capex, shares_outstanding, debt_ratio,
	created_at, updated_at`

// Upsert inserts or updates the record for (company, period, freq).
// The persisted debt ratio is computed here, once, at write time.
func (r *Repository) Upsert(rec *domain.KpiRecord) error {
	if rec.CompanyID == 0 || rec.Period == "" {
		return fmt.Errorf("company id and period are required")
	}
	if rec.Frequency == "" {
		rec.Frequency = domain.FrequencyQuarterly
	}

	rec.ComputeDebtRatio()

	now := time.Now().UTC().Format("2006-01-02 15:04:05")

	query := `
		INSERT INTO kpi_records (
			company_id, period, freq, revenue, gross_profit, operating_income,
			net_income, total_assets, total_liabilities, equity, inventory,
			receivables, payables, cash, debt, operating_cf, capex,
			shares_outstanding, debt_ratio, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(company_id, period, freq) DO UPDATE SET
			revenue = excluded.revenue,
			gross_profit = excluded.gross_profit,
			operating_income = excluded.operating_income,
			net_income = excluded.net_income,
			total_assets = excluded.total_assets,
			total_liabilities = excluded.total_liabilities,
			equity = excluded.equity,
			inventory = excluded.inventory,
			receivables = excluded.receivables,
			payables = excluded.payables,
			cash = excluded.cash,
			debt = excluded.debt,
			operating_cf = excluded.operating_cf,
			capex = excluded.capex,
			shares_outstanding = excluded.shares_outstanding,
			debt_ratio = excluded.debt_ratio,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(
		query,
		rec.CompanyID,
		rec.Period,
		string(rec.Frequency),
		rec.Revenue,
		rec.GrossProfit,
		rec.OperatingIncome,
		rec.NetIncome,
		rec.TotalAssets,
		rec.TotalLiabilities,
		rec.Equity,
		rec.Inventory,
		rec.Receivables,
		rec.Payables,
		rec.Cash,
		rec.Debt,
		rec.OperatingCashFlow,
		rec.CapitalExpenditure,
		rec.SharesOutstanding,
		rec.DebtRatio,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert kpi record: %w", err)
	}

	r.log.Debug().
		Int64("company_id", rec.CompanyID).
		Str("period", rec.Period).
		Msg("Upserted KPI record")

	return nil
}

// History returns all records for a company ordered by period ascending.
// "YYYY-Qn" and "YYYY" tokens sort chronologically as plain strings.
func (r *Repository) History(companyID int64) ([]domain.KpiRecord, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM kpi_records WHERE company_id = ? ORDER BY period", kpiColumns)

	rows, err := r.db.Query(query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query kpi history: %w", err)
	}
	defer rows.Close()

	var out []domain.KpiRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating kpi records: %w", err)
	}

	return out, nil
}

// Latest returns the most recent record for a company, or nil when none exist
func (r *Repository) Latest(companyID int64) (*domain.KpiRecord, error) {
	history, err := r.History(companyID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, nil
	}
	return &history[len(history)-1], nil
}

func scanRecord(rows *sql.Rows) (domain.KpiRecord, error) {
	var rec domain.KpiRecord
	var freq, createdAt, updatedAt string

	err := rows.Scan(
		&rec.ID,
		&rec.CompanyID,
		&rec.Period,
		&freq,
		&rec.Revenue,
		&rec.GrossProfit,
		&rec.OperatingIncome,
		&rec.NetIncome,
		&rec.TotalAssets,
		&rec.TotalLiabilities,
		&rec.Equity,
		&rec.Inventory,
		&rec.Receivables,
		&rec.Payables,
		&rec.Cash,
		&rec.Debt,
		&rec.OperatingCashFlow,
		&rec.CapitalExpenditure,
		&rec.SharesOutstanding,
		&rec.DebtRatio,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return rec, fmt.Errorf("failed to scan kpi record: %w", err)
	}

	rec.Frequency = domain.Frequency(freq)
	rec.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
	rec.UpdatedAt, _ = time.Parse("2006-01-02 15:04:05", updatedAt)
	return rec, nil
}
