package quiz

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

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

func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.StartQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	subject, valid := models.MatchSubject(string(req.Subject))
	if !valid {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "subject must be 'Physics', 'Chemistry', or 'Biology'"})
		return
	}
	req.Subject = subject
	if req.Topic == "" || !models.ValidTopic(req.Subject, req.Topic) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid topic for subject"})
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = models.DifficultyMedium
	}
	if !models.ValidDifficulties[req.Difficulty] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "difficulty must be 'easy', 'medium', or 'hard'"})
		return
	}
	if req.Count <= 0 {
		req.Count = 10
	}

	resp, err := h.service.StartQuiz(r.Context(), email, req)
	if err != nil {
		log.Printf("[handler] StartQuiz error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Question generation failed"})
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.SubmitQuizAnswer(mux.Vars(r)["id"], email, req)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) FinishQuiz(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.FinishQuiz(r.Context(), mux.Vars(r)["id"], email)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) StartDaily(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.StartDaily(r.Context(), email)
	if err != nil {
		log.Printf("[handler] StartDaily error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Question generation failed"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SubmitDailyAnswer(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.SubmitDailyAnswer(r.Context(), mux.Vars(r)["id"], email, req)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) DailyStatus(w http.ResponseWriter, r *http.Request) {
	email, ok := getUserEmail(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	writeJSON(w, http.StatusOK, h.service.DailyStatus(r.Context(), email))
}

func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Session not found"})
	case errors.Is(err, ErrNotSessionOwner):
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Session belongs to another user"})
	case errors.Is(err, ErrSessionFinished):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Session already finished"})
	case errors.Is(err, ErrQuestionIndexOOB), errors.Is(err, ErrOptionIndexOOB):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	default:
		log.Printf("[handler] session error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
