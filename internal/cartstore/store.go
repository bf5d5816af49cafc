package cartstore

import (
	"context"

	"github.com/heisemmanuell/audiophile-eshop/internal/domain"
)

// Store is the durable holding area for items the shopper intends to buy.
// One primary slot per session plus a secondary snapshot slot the
// confirmation page reads after the primary slot has been cleared.
type Store interface {
	Get(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	Put(ctx context.Context, sessionID string, items []domain.CartItem) error
	Clear(ctx context.Context, sessionID string) error
	SaveSnapshot(ctx context.Context, sessionID string, items []domain.CartItem) error
	Snapshot(ctx context.Context, sessionID string) ([]domain.CartItem, error)
}
