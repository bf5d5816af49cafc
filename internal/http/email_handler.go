package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/heisemmanuell/audiophile-eshop/internal/notifier"
)

type EmailHandler struct {
	sender  notifier.Sender
	timeout time.Duration
}

func NewEmailHandler(sender notifier.Sender, timeout time.Duration) *EmailHandler {
	return &EmailHandler{
		sender:  sender,
		timeout: timeout,
	}
}

type EmailResultDTO struct {
	MessageID string `json:"message_id,omitempty"`
}

type EmailResponseDTO struct {
	Success bool            `json:"success"`
	Result  *EmailResultDTO `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// POST /api/v1/send-email
//
// Accepts every historical payload shape; normalization happens in
// notifier.ParsePayload, not here.
func (h *EmailHandler) SendConfirmation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, EmailResponseDTO{
			Success: false,
			Error:   "failed to read request body",
		})
		return
	}

	payload, err := notifier.ParsePayload(body)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, EmailResponseDTO{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	result := h.sender.Send(ctx, payload)
	if !result.Success {
		respondJSON(w, http.StatusInternalServerError, EmailResponseDTO{
			Success: false,
			Error:   result.Err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, EmailResponseDTO{
		Success: true,
		Result:  &EmailResultDTO{MessageID: result.MessageID},
	})
}
