package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cafev2/storefront-backend/pkg/redis"
)

// RedisStore persists cart ledgers as JSON blobs with a sliding TTL so
// abandoned carts expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore binds a Redis client to cart persistence.
func NewRedisStore(client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Load(ctx context.Context, cartID string) ([]Line, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(cartID))
	if err != nil {
		if redis.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart %s: %w", cartID, err)
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", cartID, err)
	}
	return lines, nil
}

func (s *RedisStore) Save(ctx context.Context, cartID string, lines []Line) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", cartID, err)
	}
	if err := s.client.Set(ctx, s.client.CartKey(cartID), string(payload), s.ttl); err != nil {
		return fmt.Errorf("save cart %s: %w", cartID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(cartID)); err != nil {
		return fmt.Errorf("delete cart %s: %w", cartID, err)
	}
	return nil
}
