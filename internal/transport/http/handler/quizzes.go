package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lms-api/internal/application/quiz"
	"github.com/lms-api/internal/domain"
	"github.com/lms-api/internal/pkg/validate"
)

// QuizHandler handles quiz generation and lookup.
type QuizHandler struct {
	svc quiz.Service
}

func NewQuizHandler(svc quiz.Service) *QuizHandler { return &QuizHandler{svc: svc} }

func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q, err := h.svc.Generate(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (h *QuizHandler) GetByLesson(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.GetByLesson(r.Context(), chi.URLParam(r, "lesson_id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}
