package handler

import (
	"encoding/json"
	"net/http"

	aiapp "github.com/lms-api/internal/application/ai"
	"github.com/lms-api/internal/pkg/validate"
)

// AIHandler proxies requests to the external AI services.
type AIHandler struct {
	svc aiapp.Service
}

func NewAIHandler(svc aiapp.Service) *AIHandler { return &AIHandler{svc: svc} }

func (h *AIHandler) GenerateLesson(w http.ResponseWriter, r *http.Request) {
	var req aiapp.GenerateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.svc.GenerateLesson(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req aiapp.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.svc.Chat(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AIHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req aiapp.SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.svc.Synthesize(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
