package http

import (
	"context"
	"net/http"
	"time"

	"github.com/heisemmanuell/audiophile-eshop/internal/service"
)

type ConfirmationHandler struct {
	confirmation *service.ConfirmationService
	timeout      time.Duration
}

func NewConfirmationHandler(confirmation *service.ConfirmationService, timeout time.Duration) *ConfirmationHandler {
	return &ConfirmationHandler{
		confirmation: confirmation,
		timeout:      timeout,
	}
}

// GET /api/v1/order-confirmation?orderId=...
//
// A missing or unknown order id is terminal: the client renders "order not
// found" and stops, there is no retry or polling.
func (h *ConfirmationHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	orderID := r.URL.Query().Get("orderId")
	if orderID == "" {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}

	summary, err := h.confirmation.Summary(ctx, sessionID, orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
