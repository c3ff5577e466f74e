package valuation

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/modules/kpi"
)

// Handlers provides HTTP handlers for valuation runs
type Handlers struct {
	engine  *Engine
	kpiRepo *kpi.Repository
	log     zerolog.Logger
}

func NewHandlers(engine *Engine, kpiRepo *kpi.Repository, log zerolog.Logger) *Handlers {
	return &Handlers{
		engine:  engine,
		kpiRepo: kpiRepo,
		log:     log.With().Str("module", "valuation").Logger(),
	}
}

// HandleRun runs a valuation for POST /api/valuation/run. The request body
// is an Assumption object decoded on top of the defaults, so omitted fields
// keep their standard values.
func (h *Handlers) HandleRun(w http.ResponseWriter, r *http.Request) {
	asm := DefaultAssumption()
	if err := json.NewDecoder(r.Body).Decode(&asm); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if asm.CompanyID <= 0 {
		h.writeError(w, "company_id is required", http.StatusBadRequest)
		return
	}

	history, err := h.kpiRepo.History(asm.CompanyID)
	if err != nil {
		h.log.Error().Err(err).Int64("company_id", asm.CompanyID).Msg("Failed to load KPI history")
		h.writeError(w, "Failed to load KPI history", http.StatusInternalServerError)
		return
	}
	if len(history) == 0 {
		h.writeError(w, "No KPI records found for company", http.StatusNotFound)
		return
	}

	out, err := h.engine.Run(history, asm)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	h.writeJSON(w, out)
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
