package analytics

import (
	"encoding/json"
	"net/http"

	"github.com/neet-prep/backend/internal/models"
)

type Handler struct {
	aggregator *Aggregator
}

func NewHandler(aggregator *Aggregator) *Handler {
	return &Handler{aggregator: aggregator}
}

// getUserEmail extracts the authenticated user's email from the request context.
func getUserEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value("user_email").(string)
	return email, ok && email != ""
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	writeJSON(w, http.StatusOK, h.aggregator.Aggregate(r.Context(), email))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
