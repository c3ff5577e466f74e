package companies

import "database/sql"

// CompaniesSchema defines the companies table
const CompaniesSchema = `
CREATE TABLE IF NOT EXISTS companies (
    id INTEGER PRIMARY KEY,
    name TEXT UNIQUE NOT NULL,
    ticker TEXT,
    sector TEXT,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_companies_ticker ON companies(ticker);
`

// InitSchema ensures the companies table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(CompaniesSchema)
	return err
}
