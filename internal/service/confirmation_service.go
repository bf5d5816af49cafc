package service

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/heisemmanuell/audiophile-eshop/internal/cartstore"
	"github.com/heisemmanuell/audiophile-eshop/internal/domain"
	"github.com/heisemmanuell/audiophile-eshop/internal/repository"
)

// Summary is what the confirmation page renders: the item list rehydrated
// from the saved cart snapshot plus the authoritative totals from the
// persisted order. The persisted total is the source of truth at display
// time, never a client-side recomputation.
type Summary struct {
	OrderID   string             `json:"order_id"`
	Items     []domain.CartItem  `json:"items"`
	Subtotal  float64            `json:"subtotal"`
	Shipping  float64            `json:"shipping"`
	Taxes     float64            `json:"taxes"`
	Total     float64            `json:"total"`
	Status    domain.OrderStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}

type ConfirmationService struct {
	cart cartstore.Store
	repo repository.OrderRepository
	sfg  singleflight.Group // Prevents stampede on confirmation-page refresh
}

func NewConfirmationService(cart cartstore.Store, repo repository.OrderRepository) *ConfirmationService {
	return &ConfirmationService{
		cart: cart,
		repo: repo,
	}
}

// Summary fetches the persisted order and rehydrates the item list from the
// savedCart slot. A missing order surfaces repository.ErrOrderNotFound; the
// caller renders that as a terminal not-found state, no polling.
func (s *ConfirmationService) Summary(ctx context.Context, sessionID, orderID string) (*Summary, error) {
	v, err, _ := s.sfg.Do(orderID, func() (interface{}, error) {
		return s.repo.GetOrder(ctx, orderID)
	})
	if err != nil {
		return nil, err
	}
	order := v.(*domain.Order)

	items, err := s.cart.Snapshot(ctx, sessionID)
	if err != nil || len(items) == 0 {
		// Snapshot expired or unreadable; the persisted item list still
		// lets the page render.
		items = order.Items
	}

	return &Summary{
		OrderID:   order.ID,
		Items:     items,
		Subtotal:  order.Subtotal,
		Shipping:  order.Shipping,
		Taxes:     order.Taxes,
		Total:     order.Total,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}, nil
}
