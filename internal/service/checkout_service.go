package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/heisemmanuell/audiophile-eshop/internal/cartstore"
	"github.com/heisemmanuell/audiophile-eshop/internal/domain"
	"github.com/heisemmanuell/audiophile-eshop/internal/events"
	"github.com/heisemmanuell/audiophile-eshop/internal/notifier"
	"github.com/heisemmanuell/audiophile-eshop/internal/repository"
)

const (
	DefaultShippingFee   = 50.0
	DefaultTaxRate       = 0.20
	DefaultNotifyTimeout = 10 * time.Second
)

// Totals is the computed money breakdown for one submission.
// Total is derived from the other three at computation time, so the
// total == subtotal + shipping + taxes invariant holds by construction.
type Totals struct {
	Subtotal float64
	Shipping float64
	Taxes    float64
	Total    float64
}

type CheckoutService struct {
	cart          cartstore.Store
	repo          repository.OrderRepository
	sender        notifier.Sender
	pub           events.Publisher
	shippingFee   float64
	taxRate       float64
	notifyTimeout time.Duration
}

func NewCheckoutService(
	cart cartstore.Store,
	repo repository.OrderRepository,
	sender notifier.Sender,
	pub events.Publisher,
) *CheckoutService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &CheckoutService{
		cart:          cart,
		repo:          repo,
		sender:        sender,
		pub:           pub,
		shippingFee:   DefaultShippingFee,
		taxRate:       DefaultTaxRate,
		notifyTimeout: DefaultNotifyTimeout,
	}
}

// WithPricing overrides the shipping fee and tax rate.
func (s *CheckoutService) WithPricing(shippingFee, taxRate float64) *CheckoutService {
	s.shippingFee = shippingFee
	s.taxRate = taxRate
	return s
}

// WithNotifyTimeout bounds the confirmation email send.
func (s *CheckoutService) WithNotifyTimeout(d time.Duration) *CheckoutService {
	s.notifyTimeout = d
	return s
}

// Submit runs one user-initiated checkout: load cart, compute totals,
// validate, persist the order, fire the confirmation email, snapshot and
// clear the cart.
//
// Persistence is the durability boundary: a repository failure aborts
// everything after it and leaves the cart untouched. The email send is
// best-effort; its outcome never changes what Submit returns.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, form domain.CheckoutForm) (string, error) {
	items, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load cart: %w", err)
	}
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	totals := s.ComputeTotals(items)

	for _, item := range items {
		if item.Quantity <= 0 {
			return "", ErrInvalidQuantity
		}
	}

	order := &domain.Order{
		IdempotencyKey: form.IdempotencyKey,
		Name:           form.Name,
		Email:          form.Email,
		Phone:          form.Phone,
		Address:        form.Address,
		City:           form.City,
		Country:        form.Country,
		ZipCode:        form.ZipCode,
		PaymentMethod:  form.PaymentMethod,
		Items:          items,
		Subtotal:       totals.Subtotal,
		Shipping:       totals.Shipping,
		Taxes:          totals.Taxes,
		Total:          totals.Total,
	}

	orderID, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return "", fmt.Errorf("failed to persist order: %w", err)
	}

	s.sendConfirmation(orderID, form, items, totals)

	if err := s.cart.SaveSnapshot(ctx, sessionID, items); err != nil {
		log.Printf("failed to snapshot cart for session %v: %v", sessionID, err)
	}
	if err := s.cart.Clear(ctx, sessionID); err != nil {
		log.Printf("failed to clear cart for session %v: %v", sessionID, err)
	}

	s.pub.Publish(ctx, events.TypeOrderCreated, orderID, map[string]interface{}{
		"order_id":   orderID,
		"session_id": sessionID,
		"total":      totals.Total,
	})

	return orderID, nil
}

// ComputeTotals prices a cart. Taxes are charged on the pre-shipping
// subtotal, rounded half-up to whole currency units.
func (s *CheckoutService) ComputeTotals(items []domain.CartItem) Totals {
	subtotal := domain.Subtotal(items)
	taxes := math.Round(subtotal * s.taxRate)
	return Totals{
		Subtotal: subtotal,
		Shipping: s.shippingFee,
		Taxes:    taxes,
		Total:    subtotal + s.shippingFee + taxes,
	}
}

// sendConfirmation fires the confirmation email with its own bounded
// deadline, detached from the request context so a canceled request cannot
// skip it and a slow provider cannot block navigation.
func (s *CheckoutService) sendConfirmation(orderID string, form domain.CheckoutForm, items []domain.CartItem, totals Totals) {
	ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
	defer cancel()

	payload := notifier.EmailPayload{
		OrderID: orderID,
		Customer: notifier.Customer{
			Name:  form.Name,
			Email: form.Email,
			Phone: form.Phone,
		},
		Shipping: notifier.Address{
			Address: form.Address,
			City:    form.City,
			Country: form.Country,
			Zip:     form.ZipCode,
		},
		Totals: notifier.Totals{
			Subtotal:   totals.Subtotal,
			Shipping:   totals.Shipping,
			Taxes:      totals.Taxes,
			GrandTotal: totals.Total,
		},
	}
	for _, item := range items {
		payload.Items = append(payload.Items, notifier.Item{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	result := s.sender.Send(ctx, payload)
	if !result.Success {
		log.Printf("confirmation email failed for order %v: %v", orderID, result.Err)
		return
	}
	log.Printf("confirmation email sent for order %v, message id = %v", orderID, result.MessageID)
}
