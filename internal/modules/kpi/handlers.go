package kpi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/domain"
)

// Handlers provides HTTP handlers for the KPI module
type Handlers struct {
	repo    *Repository
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new KPI handlers instance
func NewHandlers(repo *Repository, service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		repo:    repo,
		service: service,
		log:     log.With().Str("module", "kpi_handlers").Logger(),
	}
}

// HandleHistory handles GET /api/companies/{companyID}/kpis
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(chi.URLParam(r, "companyID"), 10, 64)
	if err != nil {
		h.writeError(w, "Invalid company ID", http.StatusBadRequest)
		return
	}

	history, err := h.repo.History(companyID)
	if err != nil {
		h.log.Error().Err(err).Int64("company_id", companyID).Msg("Failed to load KPI history")
		h.writeError(w, "Failed to load KPI history", http.StatusInternalServerError)
		return
	}

	if len(history) == 0 {
		h.writeError(w, "No KPI records found for company", http.StatusNotFound)
		return
	}

	h.writeJSON(w, history)
}

// HandleUpsert handles POST /api/companies/{companyID}/kpis.
// Accepts one record in the canonical schema; absent fields stay unreported.
func (h *Handlers) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(chi.URLParam(r, "companyID"), 10, 64)
	if err != nil {
		h.writeError(w, "Invalid company ID", http.StatusBadRequest)
		return
	}

	var rec domain.KpiRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode KPI record")
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rec.CompanyID = companyID
	if rec.Period == "" {
		h.writeError(w, "Period is required", http.StatusBadRequest)
		return
	}

	if err := h.repo.Upsert(&rec); err != nil {
		h.log.Error().Err(err).Msg("Failed to upsert KPI record")
		h.writeError(w, "Failed to store KPI record", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, rec)
}

// HandleIngest handles POST /api/ingest?ticker=AAPL&freq=quarterly&name=Apple
func (h *Handlers) HandleIngest(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		h.writeError(w, "ticker query parameter is required", http.StatusBadRequest)
		return
	}

	freq := domain.FrequencyQuarterly
	if r.URL.Query().Get("freq") == string(domain.FrequencyAnnual) {
		freq = domain.FrequencyAnnual
	}

	result, err := h.service.IngestTicker(ticker, freq, r.URL.Query().Get("name"))
	if err != nil {
		h.log.Error().Err(err).Str("ticker", ticker).Msg("Ingestion failed")
		h.writeError(w, err.Error(), http.StatusBadGateway)
		return
	}

	h.writeJSON(w, result)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
