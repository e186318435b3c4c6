package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lms-api/internal/application/discussion"
	"github.com/lms-api/internal/domain"
	"github.com/lms-api/internal/pkg/validate"
	"github.com/lms-api/internal/transport/http/middleware"
)

// DiscussionHandler handles course discussion threads.
type DiscussionHandler struct {
	svc discussion.Service
}

func NewDiscussionHandler(svc discussion.Service) *DiscussionHandler {
	return &DiscussionHandler{svc: svc}
}

func (h *DiscussionHandler) Post(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateDiscussionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := h.svc.Post(r.Context(), caller.Email, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *DiscussionHandler) List(w http.ResponseWriter, r *http.Request) {
	courseID := r.URL.Query().Get("course_id")
	if courseID == "" {
		writeError(w, http.StatusBadRequest, "course_id required")
		return
	}
	msgs, err := h.svc.ListByCourse(r.Context(), courseID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}
