package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heisemmanuell/audiophile-eshop/internal/domain"
	"github.com/heisemmanuell/audiophile-eshop/internal/repository"
)

func storedOrder() *domain.Order {
	return &domain.Order{
		ID:        "order-abc-123",
		Items:     []domain.CartItem{{ID: "a", Name: "Speaker", Price: 100, Quantity: 2}},
		Subtotal:  200,
		Shipping:  50,
		Taxes:     40,
		Total:     290,
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now(),
	}
}

func TestSummary_RehydratesFromSnapshot(t *testing.T) {
	snapshot := []domain.CartItem{{ID: "a", Name: "Speaker", Price: 100, Quantity: 2}}
	cart := &MockCartStore{SnapshotItems: snapshot}
	repo := &MockOrderRepository{GetResult: storedOrder()}
	svc := NewConfirmationService(cart, repo)

	summary, err := svc.Summary(context.Background(), "sess-1", "order-abc-123")

	require.NoError(t, err)
	assert.Equal(t, snapshot, summary.Items)
	assert.Equal(t, 290.0, summary.Total, "displayed total comes from the persisted order")
	assert.Equal(t, domain.OrderStatusPending, summary.Status)
}

func TestSummary_FallsBackToPersistedItems(t *testing.T) {
	cart := &MockCartStore{SnapshotItems: nil} // snapshot expired
	repo := &MockOrderRepository{GetResult: storedOrder()}
	svc := NewConfirmationService(cart, repo)

	summary, err := svc.Summary(context.Background(), "sess-1", "order-abc-123")

	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "Speaker", summary.Items[0].Name)
}

func TestSummary_OrderNotFound(t *testing.T) {
	cart := &MockCartStore{}
	repo := &MockOrderRepository{GetErr: repository.ErrOrderNotFound}
	svc := NewConfirmationService(cart, repo)

	summary, err := svc.Summary(context.Background(), "sess-1", "missing")

	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
	assert.Nil(t, summary)
}
