package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/lms-api/internal/application/progress"
	"github.com/lms-api/internal/domain"
	"github.com/lms-api/internal/pkg/validate"
	"github.com/lms-api/internal/transport/http/middleware"
)

// ProgressHandler handles progress upserts and the leaderboard.
type ProgressHandler struct {
	svc progress.Service
}

func NewProgressHandler(svc progress.Service) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

func (h *ProgressHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpsertProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Upsert(r.Context(), caller.Email, req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *ProgressHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	records, err := h.svc.ListByUser(r.Context(), caller.Email, r.URL.Query().Get("course_id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *ProgressHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := progress.DefaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	entries, err := h.svc.Leaderboard(r.Context(), limit)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
