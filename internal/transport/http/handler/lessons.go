package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lms-api/internal/application/catalog"
	"github.com/lms-api/internal/domain"
	"github.com/lms-api/internal/pkg/validate"
)

// LessonHandler handles lesson endpoints.
type LessonHandler struct {
	svc catalog.Service
}

func NewLessonHandler(svc catalog.Service) *LessonHandler { return &LessonHandler{svc: svc} }

func (h *LessonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	l, err := h.svc.CreateLesson(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

// List returns a course's lessons ordered by their `order` attribute.
func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	courseID := r.URL.Query().Get("course_id")
	if courseID == "" {
		writeError(w, http.StatusBadRequest, "course_id required")
		return
	}
	lessons, err := h.svc.ListLessons(r.Context(), courseID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lessons)
}

func (h *LessonHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.GetLesson(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}
