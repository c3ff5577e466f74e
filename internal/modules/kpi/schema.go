package kpi

import "database/sql"

// KpiSchema defines the kpi_records table. (company_id, period, freq) is
// unique; the debt_ratio column is filled at write time by the repository.
const KpiSchema = `
CREATE TABLE IF NOT EXISTS kpi_records (
    id INTEGER PRIMARY KEY,
    company_id INTEGER NOT NULL REFERENCES companies(id),
    period TEXT NOT NULL,
    freq TEXT NOT NULL DEFAULT 'quarterly',
    revenue REAL,
    gross_profit REAL,
    operating_income REAL,
    net_income REAL,
    total_assets REAL,
    total_liabilities REAL,
    equity REAL,
    inventory REAL,
    receivables REAL,
    payables REAL,
    cash REAL,
    debt REAL,
    operating_cf REAL,
    capex REAL,
    shares_outstanding REAL,
    debt_ratio REAL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    UNIQUE(company_id, period, freq)
);

CREATE INDEX IF NOT EXISTS idx_kpi_records_company ON kpi_records(company_id, period);
`

// InitSchema ensures the kpi_records table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(KpiSchema)
	return err
}
