package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lms-api/internal/pkg/id"
	"github.com/lms-api/internal/transport/http/middleware"
)

// PaymentHandler is a stub checkout endpoint. No payment provider is wired
// yet; it echoes a created checkout so clients can integrate against the
// shape.
type PaymentHandler struct{}

func NewPaymentHandler() *PaymentHandler { return &PaymentHandler{} }

type checkoutRequest struct {
	Provider string  `json:"provider"`
	CourseID string  `json:"course_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Provider == "" {
		req.Provider = "stripe"
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"checkout_id": id.New(),
		"provider":    req.Provider,
		"status":      "created",
		"course_id":   req.CourseID,
		"amount":      req.Amount,
		"currency":    req.Currency,
		"user_email":  caller.Email,
		"created_at":  time.Now().UTC().Format(time.RFC3339),
	})
}
