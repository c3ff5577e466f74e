package companies

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/domain"
)

// Handlers provides HTTP handlers for the companies module
type Handlers struct {
	repo *Repository
	log  zerolog.Logger
}

// NewHandlers creates a new companies handlers instance
func NewHandlers(repo *Repository, log zerolog.Logger) *Handlers {
	return &Handlers{
		repo: repo,
		log:  log.With().Str("module", "companies_handlers").Logger(),
	}
}

// HandleList handles GET /api/companies
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list companies")
		h.writeError(w, "Failed to list companies", http.StatusInternalServerError)
		return
	}

	if list == nil {
		list = []domain.Company{}
	}
	h.writeJSON(w, list)
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
