// Package cartredis keeps shopping carts in redis.
package cartredis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zaplanje/coin/business/core/market"
)

// DefaultTTL is how long an untouched cart is kept.
const DefaultTTL = 24 * time.Hour

// Store manages the set of APIs for cart access.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore constructs the api for data access.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Store{
		client: client,
		ttl:    ttl,
	}
}

func (s *Store) key(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

// Query returns the user's cart or an empty one.
func (s *Store) Query(ctx context.Context, userID string) (market.Cart, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return market.Cart{UserID: userID}, nil
	}
	if err != nil {
		return market.Cart{}, fmt.Errorf("get: %w", err)
	}

	var cart market.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return market.Cart{}, fmt.Errorf("unmarshal: %w", err)
	}

	return cart, nil
}

// Save replaces the user's cart and refreshes its ttl.
func (s *Store) Save(ctx context.Context, cart market.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	return s.client.Set(ctx, s.key(cart.UserID), data, s.ttl).Err()
}

// Delete removes the user's cart.
func (s *Store) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}
