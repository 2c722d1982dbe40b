// Package walletmem keeps wallet addresses in memory.
package walletmem

import (
	"context"
	"sync"

	"github.com/zaplanje/coin/business/core/wallet"
)

// Store manages the set of APIs for wallet address access.
type Store struct {
	mu        sync.RWMutex
	byUser    map[string]wallet.Address
	byAddress map[string]string
}

// NewStore constructs the api for data access.
func NewStore() *Store {
	return &Store{
		byUser:    make(map[string]wallet.Address),
		byAddress: make(map[string]string),
	}
}

// Create inserts the address. A user owns at most one address.
func (s *Store) Create(ctx context.Context, addr wallet.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUser[addr.UserID]; exists {
		return wallet.ErrDuplicateAddress
	}

	if _, exists := s.byAddress[addr.Address]; exists {
		return wallet.ErrDuplicateAddress
	}

	s.byUser[addr.UserID] = addr
	s.byAddress[addr.Address] = addr.UserID
	return nil
}

// QueryByUserID gets the address issued to the user.
func (s *Store) QueryByUserID(ctx context.Context, userID string) (wallet.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	addr, exists := s.byUser[userID]
	if !exists {
		return wallet.Address{}, wallet.ErrNotFound
	}
	return addr, nil
}

// QueryByAddress gets the wallet with the address.
func (s *Store) QueryByAddress(ctx context.Context, address string) (wallet.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, exists := s.byAddress[address]
	if !exists {
		return wallet.Address{}, wallet.ErrNotFound
	}
	return s.byUser[userID], nil
}
