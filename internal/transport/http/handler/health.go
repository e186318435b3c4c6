package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// StorePinger checks that the backing store answers.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health-check and test endpoints.
type HealthHandler struct {
	started time.Time
	store   StorePinger // nil skips the store check
}

func NewHealthHandler(store StorePinger) *HealthHandler {
	return &HealthHandler{started: time.Now(), store: store}
}

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	if action == "ping" {
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "pong"})
		return
	}
	writeError(w, http.StatusBadRequest, "unknown action")
}

// Test reports liveness plus a store round-trip, so a 200 here means the
// process AND its database are answering.
func (h *HealthHandler) Test(w http.ResponseWriter, r *http.Request) {
	storeStatus := "skipped"
	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"message": "store unreachable",
				"store":   "error",
				"error":   err.Error(),
			})
			return
		}
		storeStatus = "ok"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "ok",
		"store":   storeStatus,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}
