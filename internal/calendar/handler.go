package calendar

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/neet-prep/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// getUserEmail extracts the authenticated user's email from the request context.
func getUserEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value("user_email").(string)
	return email, ok && email != ""
}

// GetMonth serves one month's view model. Defaults to the current month
// when year/month query params are absent.
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	now := time.Now()
	query := r.URL.Query()
	year := intQueryParam(query, "year", now.Year())
	month := intQueryParam(query, "month", int(now.Month()))
	if month < 1 || month > 12 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "month must be between 1 and 12"})
		return
	}

	writeJSON(w, http.StatusOK, h.service.Month(r.Context(), email, year, month))
}

func (h *Handler) ToggleDay(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.ToggleDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Date == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "date is required"})
		return
	}

	resp, err := h.service.ToggleDay(r.Context(), email, req.Date)
	if err != nil {
		if _, parseErr := time.Parse(models.DateLayout, req.Date); parseErr != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "date must be YYYY-MM-DD"})
			return
		}
		log.Printf("[handler] ToggleDay error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save calendar mark"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
