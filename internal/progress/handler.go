package progress

import (
	"encoding/json"
	"net/http"

	"github.com/neet-prep/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// getUserEmail extracts the authenticated user's email from the request context.
func getUserEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value("user_email").(string)
	return email, ok && email != ""
}

// GetQuizHistory returns the user's full quiz history, oldest first.
func (h *Handler) GetQuizHistory(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	history := h.store.QuizHistory(r.Context(), email)
	if history == nil {
		history = []models.QuizRecord{}
	}
	writeJSON(w, http.StatusOK, history)
}

// GetDailyHistory returns the user's daily-challenge records, one per date.
func (h *Handler) GetDailyHistory(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	history := h.store.DailyHistory(r.Context(), email)
	if history == nil {
		history = []models.DailyRecord{}
	}
	writeJSON(w, http.StatusOK, history)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
