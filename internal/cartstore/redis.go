package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heisemmanuell/audiophile-eshop/internal/domain"
	"github.com/heisemmanuell/audiophile-eshop/internal/events"
)

func NewRedisStore(client *redis.Client, pub events.Publisher) *RedisStore {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &RedisStore{
		client:      client,
		pub:         pub,
		snapshotTTL: 24 * time.Hour,
	}
}

type RedisStore struct {
	client      *redis.Client
	pub         events.Publisher
	snapshotTTL time.Duration
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	return s.read(ctx, cartKey(sessionID))
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, items []domain.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(sessionID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	s.notify(sessionID, len(items))
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	s.notify(sessionID, 0)
	return nil
}

func (s *RedisStore) SaveSnapshot(ctx context.Context, sessionID string, items []domain.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal snapshot failed: %w", err)
	}

	if err := s.client.Set(ctx, snapshotKey(sessionID), data, s.snapshotTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Snapshot(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	return s.read(ctx, snapshotKey(sessionID))
}

// read returns an empty item list for a missing slot. An absent cart and an
// empty cart are the same thing to the checkout flow.
func (s *RedisStore) read(ctx context.Context, key string) ([]domain.CartItem, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}

	return items, nil
}

// notify broadcasts a cart change to other tabs/instances. Uses its own
// short deadline so a slow broker cannot delay the storage write path.
func (s *RedisStore) notify(sessionID string, itemCount int) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.pub.Publish(ctx, events.TypeCartUpdated, sessionID, map[string]interface{}{
		"session_id": sessionID,
		"item_count": itemCount,
	})
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func snapshotKey(sessionID string) string {
	return fmt.Sprintf("savedcart:%s", sessionID)
}
