package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/heisemmanuell/audiophile-eshop/internal/domain"
)

func setupTestDB(t *testing.T) (*MongoRepository, func()) {
	ctx := context.Background()

	// Start MongoDB container
	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, ConnectConfig{URI: uri, Database: "testdb"})
	require.NoError(t, err)

	repo := NewMongoRepository(db)
	err = repo.CreateIndexes(ctx)
	require.NoError(t, err)

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func testOrder() *domain.Order {
	return &domain.Order{
		Name:          "Alex Doe",
		Email:         "alex@example.com",
		Phone:         "+1 555 0100",
		Address:       "1 Main St",
		City:          "Berlin",
		Country:       "Germany",
		ZipCode:       "10115",
		PaymentMethod: "cash-on-delivery",
		Items: []domain.CartItem{
			{ID: "a", Name: "Speaker", Price: 100, Quantity: 2},
		},
		Subtotal: 200,
		Shipping: 50,
		Taxes:    40,
		Total:    290,
	}
}

func TestCreateOrder_GetOrder_RoundTrip(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	id, err := repo.CreateOrder(ctx, testOrder())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	order, err := repo.GetOrder(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, order.ID)
	assert.Equal(t, "alex@example.com", order.Email)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "Speaker", order.Items[0].Name)
	assert.Equal(t, 290.0, order.Total)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestCreateOrder_RepositoryOwnsIdentityFields(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	order := testOrder()
	order.ID = "client-chosen-id"
	order.Status = domain.OrderStatusShipped
	order.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)

	id, err := repo.CreateOrder(ctx, order)
	require.NoError(t, err)
	assert.NotEqual(t, "client-chosen-id", id)

	stored, err := repo.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, stored.Status)
	assert.True(t, stored.CreatedAt.After(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCreateOrder_DuplicateIdempotencyKey(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	first := testOrder()
	first.IdempotencyKey = "submit-once"
	_, err := repo.CreateOrder(ctx, first)
	require.NoError(t, err)

	second := testOrder()
	second.IdempotencyKey = "submit-once"
	_, err = repo.CreateOrder(ctx, second)
	assert.ErrorIs(t, err, ErrDuplicateOrder)
}

func TestCreateOrder_NoIdempotencyKeyNeverCollides(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	id1, err := repo.CreateOrder(ctx, testOrder())
	require.NoError(t, err)
	id2, err := repo.CreateOrder(ctx, testOrder())
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
}

func TestGetOrder_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	order, err := repo.GetOrder(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Nil(t, order)
}
