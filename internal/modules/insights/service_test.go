package insights

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/finsight/internal/database"
	"github.com/aristath/finsight/internal/domain"
	"github.com/aristath/finsight/internal/modules/companies"
	"github.com/aristath/finsight/internal/modules/kpi"
	"github.com/aristath/finsight/pkg/logger"
)

func setupService(t *testing.T) (*Service, *kpi.Repository, *companies.Repository) {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, companies.InitSchema(db.Conn()))
	require.NoError(t, kpi.InitSchema(db.Conn()))

	log := logger.New(logger.Config{Level: "error", Pretty: false})
	companiesRepo := companies.NewRepository(db.Conn(), log)
	kpiRepo := kpi.NewRepository(db.Conn(), log)

	return NewService(kpiRepo, companiesRepo, log), kpiRepo, companiesRepo
}

func seedCompany(t *testing.T, companiesRepo *companies.Repository, kpiRepo *kpi.Repository, name string, revenues []float64) int64 {
	t.Helper()

	company, err := companiesRepo.Upsert(name, nil)
	require.NoError(t, err)

	periods := []string{"2023-Q1", "2023-Q2", "2023-Q3", "2023-Q4", "2024-Q1"}
	for i, rev := range revenues {
		r := rev
		require.NoError(t, kpiRepo.Upsert(&domain.KpiRecord{
			CompanyID: company.ID,
			Period:    periods[i],
			Frequency: domain.FrequencyQuarterly,
			Revenue:   &r,
		}))
	}

	return company.ID
}

func TestService_Generate_DoubleDigitGrowth(t *testing.T) {
	service, kpiRepo, companiesRepo := setupService(t)

	// Revenue up 20% vs four quarters earlier.
	companyID := seedCompany(t, companiesRepo, kpiRepo, "Growth Co",
		[]float64{1000, 1010, 1020, 1030, 1200})

	result, err := service.Generate(companyID, "")
	require.NoError(t, err)

	require.NotEmpty(t, result.Summary)
	assert.Contains(t, result.Summary[0], "Double-digit growth")
	assert.InDelta(t, 0.7, result.Score, 1e-9)
}

func TestService_Generate_NoSignals(t *testing.T) {
	service, kpiRepo, companiesRepo := setupService(t)

	companyID := seedCompany(t, companiesRepo, kpiRepo, "Flat Co",
		[]float64{1000, 1000, 1000, 1000, 1000})

	result, err := service.Generate(companyID, "")
	require.NoError(t, err)

	assert.Equal(t, "No notable signals", result.Headline)
	assert.Empty(t, result.Risks)
	assert.Zero(t, result.Score)
}

func TestService_Generate_SpecificPeriod(t *testing.T) {
	service, kpiRepo, companiesRepo := setupService(t)

	companyID := seedCompany(t, companiesRepo, kpiRepo, "Acme",
		[]float64{1000, 1010, 1020, 1030, 1200})

	// An early period has no YoY lookback, so growth cannot fire.
	result, err := service.Generate(companyID, "2023-Q2")
	require.NoError(t, err)
	assert.Equal(t, "No notable signals", result.Headline)

	_, err = service.Generate(companyID, "2019-Q1")
	assert.Error(t, err, "unknown period must be rejected")
}

func TestService_Generate_UnknownCompany(t *testing.T) {
	service, _, _ := setupService(t)

	_, err := service.Generate(999, "")
	assert.Error(t, err)
}
