// Package cartmem keeps shopping carts in memory.
package cartmem

import (
	"context"
	"slices"
	"sync"

	"github.com/zaplanje/coin/business/core/market"
)

// Store manages the set of APIs for cart access.
type Store struct {
	mu    sync.RWMutex
	carts map[string]market.Cart
}

// NewStore constructs the api for data access.
func NewStore() *Store {
	return &Store{
		carts: make(map[string]market.Cart),
	}
}

// Query returns the user's cart or an empty one.
func (s *Store) Query(ctx context.Context, userID string) (market.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, exists := s.carts[userID]
	if !exists {
		return market.Cart{UserID: userID}, nil
	}

	cart.Lines = slices.Clone(cart.Lines)
	return cart, nil
}

// Save replaces the user's cart.
func (s *Store) Save(ctx context.Context, cart market.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart.Lines = slices.Clone(cart.Lines)
	s.carts[cart.UserID] = cart
	return nil
}

// Delete removes the user's cart.
func (s *Store) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}
