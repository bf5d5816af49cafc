package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/heisemmanuell/audiophile-eshop/internal/cartstore"
	"github.com/heisemmanuell/audiophile-eshop/internal/domain"
)

type CartHandler struct {
	store   cartstore.Store
	timeout time.Duration
}

func NewCartHandler(store cartstore.Store, timeout time.Duration) *CartHandler {
	return &CartHandler{
		store:   store,
		timeout: timeout,
	}
}

type CartItemDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type PutCartRequestDTO struct {
	Items []CartItemDTO `json:"items"`
}

type CartResponseDTO struct {
	Items    []CartItemDTO `json:"items"`
	Subtotal float64       `json:"subtotal"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	items, err := h.store.Get(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(items))
}

// PUT /api/v1/cart
func (h *CartHandler) PutCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var req PutCartRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	items := make([]domain.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.ID == "" {
			respondError(w, http.StatusBadRequest, "invalid_item", "item id is required")
			return
		}
		if it.Price < 0 {
			respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
			return
		}
		if it.Quantity <= 0 || it.Quantity > 99 {
			respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
			return
		}
		items = append(items, domain.CartItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	if err := h.store.Put(ctx, sessionID, items); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(items))
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	if err := h.store.Clear(ctx, sessionID); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(nil))
}

func toCartResponse(items []domain.CartItem) CartResponseDTO {
	dtos := make([]CartItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, CartItemDTO{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	return CartResponseDTO{
		Items:    dtos,
		Subtotal: domain.Subtotal(items),
	}
}
