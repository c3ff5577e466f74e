package insights

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers provides HTTP handlers for the insights module
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new insights handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("module", "insights_handlers").Logger(),
	}
}

// HandleGet handles GET /api/companies/{companyID}/insights/{period}
func (h *Handlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(chi.URLParam(r, "companyID"), 10, 64)
	if err != nil {
		h.writeError(w, "Invalid company ID", http.StatusBadRequest)
		return
	}

	period := chi.URLParam(r, "period")

	result, err := h.service.Generate(companyID, period)
	if err != nil {
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "no KPI history") {
			h.writeError(w, err.Error(), http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Int64("company_id", companyID).Msg("Failed to generate insights")
		h.writeError(w, "Failed to generate insights", http.StatusInternalServerError)
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
