package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectConfig bounds the Mongo client backing the order store.
// Zero fields fall back to defaults suited for a single storefront instance.
type ConnectConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	SelectTimeout  time.Duration
	MaxPoolSize    uint64
	MinPoolSize    uint64
}

func (c ConnectConfig) clientOptions() *options.ClientOptions {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	if c.SelectTimeout <= 0 {
		c.SelectTimeout = 5 * time.Second
	}
	if c.MaxPoolSize == 0 {
		c.MaxPoolSize = 50
	}
	if c.MinPoolSize == 0 {
		c.MinPoolSize = 5
	}
	return options.Client().
		ApplyURI(c.URI).
		SetConnectTimeout(c.ConnectTimeout).
		SetServerSelectionTimeout(c.SelectTimeout).
		SetMaxPoolSize(c.MaxPoolSize).
		SetMinPoolSize(c.MinPoolSize)
}

// ConnectMongoDB dials the order store database and verifies the connection.
func ConnectMongoDB(ctx context.Context, cfg ConnectConfig) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, cfg.clientOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to order store: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping order store: %w", err)
	}

	return client.Database(cfg.Database), nil
}
