package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lms-api/internal/application/catalog"
	"github.com/lms-api/internal/domain"
	"github.com/lms-api/internal/pkg/validate"
	"github.com/lms-api/internal/transport/http/middleware"
)

// CourseHandler handles course endpoints.
type CourseHandler struct {
	svc catalog.Service
}

func NewCourseHandler(svc catalog.Service) *CourseHandler { return &CourseHandler{svc: svc} }

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())
	var req domain.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.svc.CreateCourse(r.Context(), caller, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.svc.ListCourses(r.Context(), r.URL.Query().Get("teacher_email"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCourse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
