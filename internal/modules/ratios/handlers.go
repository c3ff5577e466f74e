package ratios

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/modules/kpi"
)

// Handlers provides HTTP handlers for derived ratio series
type Handlers struct {
	engine  *Engine
	kpiRepo *kpi.Repository
	log     zerolog.Logger
}

func NewHandlers(engine *Engine, kpiRepo *kpi.Repository, log zerolog.Logger) *Handlers {
	return &Handlers{
		engine:  engine,
		kpiRepo: kpiRepo,
		log:     log.With().Str("module", "ratios").Logger(),
	}
}

// HandleHistory computes the ratio series for GET /api/companies/{companyID}/ratios
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(chi.URLParam(r, "companyID"), 10, 64)
	if err != nil {
		h.writeError(w, "Invalid company ID", http.StatusBadRequest)
		return
	}

	history, err := h.kpiRepo.History(companyID)
	if err != nil {
		h.log.Error().Err(err).Int64("company_id", companyID).Msg("Failed to load KPI history")
		h.writeError(w, "Failed to load KPI history", http.StatusInternalServerError)
		return
	}
	if len(history) == 0 {
		h.writeError(w, "No KPI records found for company", http.StatusNotFound)
		return
	}

	h.writeJSON(w, h.engine.Compute(history))
}

func (h *Handlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
