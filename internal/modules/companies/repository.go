package companies

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/domain"
)

// Repository handles company persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new company repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "companies").Logger(),
	}
}

// Upsert creates a company by name or updates its ticker if it already exists
func (r *Repository) Upsert(name string, ticker *string) (*domain.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("company name is required")
	}

	existing, err := r.GetByName(name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if ticker != nil && (existing.Ticker == nil || *existing.Ticker != *ticker) {
			if _, err := r.db.Exec("UPDATE companies SET ticker = ? WHERE id = ?", ticker, existing.ID); err != nil {
				return nil, fmt.Errorf("failed to update company ticker: %w", err)
			}
			existing.Ticker = ticker
			r.log.Info().Str("name", name).Str("ticker", *ticker).Msg("Updated company ticker")
		}
		return existing, nil
	}

	createdAt := time.Now().UTC().Format("2006-01-02 15:04:05")
	result, err := r.db.Exec(
		"INSERT INTO companies (name, ticker, created_at) VALUES (?, ?, ?)",
		name, ticker, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert company: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	r.log.Info().Str("name", name).Int64("id", id).Msg("Created company")

	company := &domain.Company{ID: id, Name: name, Ticker: ticker}
	company.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
	return company, nil
}

// GetByID returns a company by id, or nil when not found
func (r *Repository) GetByID(id int64) (*domain.Company, error) {
	return r.scanOne(r.db.QueryRow(
		"SELECT id, name, ticker, sector, created_at FROM companies WHERE id = ?", id))
}

// GetByName returns a company by exact name, or nil when not found
func (r *Repository) GetByName(name string) (*domain.Company, error) {
	return r.scanOne(r.db.QueryRow(
		"SELECT id, name, ticker, sector, created_at FROM companies WHERE name = ?", name))
}

// List returns all companies ordered by name
func (r *Repository) List() ([]domain.Company, error) {
	rows, err := r.db.Query("SELECT id, name, ticker, sector, created_at FROM companies ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var out []domain.Company
	for rows.Next() {
		var c domain.Company
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Ticker, &c.Sector, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		c.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}

	return out, nil
}

// ListWithTicker returns companies that have a ticker set, used by the feed sync job
func (r *Repository) ListWithTicker() ([]domain.Company, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	var out []domain.Company
	for _, c := range all {
		if c.Ticker != nil && *c.Ticker != "" {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *Repository) scanOne(row *sql.Row) (*domain.Company, error) {
	var c domain.Company
	var createdAt string

	err := row.Scan(&c.ID, &c.Name, &c.Ticker, &c.Sector, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan company: %w", err)
	}

	c.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
	return &c, nil
}
