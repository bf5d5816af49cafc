package repository

import (
	"context"
	"errors"

	"github.com/heisemmanuell/audiophile-eshop/internal/domain"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrDuplicateOrder = errors.New("order already submitted")
)

// OrderRepository is the persistence boundary for order documents.
// Consumers define this interface, not the MongoDB implementation.
//
// The repository is the sole authority for order identifiers, status and
// creation timestamps: whatever the caller puts in those fields is ignored.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) (string, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
}
