package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/heisemmanuell/audiophile-eshop/internal/domain"
)

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection("orders"),
	}
}

func (m *MongoRepository) CreateOrder(ctx context.Context, order *domain.Order) (string, error) {
	doc := *order
	doc.ID = uuid.NewString()
	doc.Status = domain.OrderStatusPending
	doc.CreatedAt = time.Now().UTC()

	_, err := m.collection.InsertOne(ctx, &doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateOrder
		}
		return "", fmt.Errorf("failed to insert order: %w", err)
	}

	return doc.ID, nil
}

func (m *MongoRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order

	filter := bson.M{"_id": id}
	err := m.collection.FindOne(ctx, filter).Decode(&order)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

func (m *MongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "idempotency_key", Value: 1}},
			// Sparse: orders submitted without a key never collide.
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
