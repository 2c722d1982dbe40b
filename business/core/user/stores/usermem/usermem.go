// Package usermem keeps users in memory. It backs the service when no
// database is configured.
package usermem

import (
	"context"
	"sync"
	"time"

	"github.com/zaplanje/coin/business/core/user"
)

// Store manages the set of APIs for user access.
type Store struct {
	mu      sync.RWMutex
	byID    map[string]user.User
	byEmail map[string]string
}

// NewStore constructs the api for data access.
func NewStore() *Store {
	return &Store{
		byID:    make(map[string]user.User),
		byEmail: make(map[string]string),
	}
}

// Create inserts a new user.
func (s *Store) Create(ctx context.Context, usr user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[usr.Email]; exists {
		return user.ErrUniqueEmail
	}

	s.byID[usr.ID] = usr
	s.byEmail[usr.Email] = usr.ID
	return nil
}

// UpdatePassword replaces the password hash of the user.
func (s *Store) UpdatePassword(ctx context.Context, userID string, hash []byte, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	usr, exists := s.byID[userID]
	if !exists {
		return user.ErrNotFound
	}

	usr.PasswordHash = hash
	usr.DateUpdated = now
	s.byID[userID] = usr
	return nil
}

// QueryByID gets the specified user.
func (s *Store) QueryByID(ctx context.Context, userID string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	usr, exists := s.byID[userID]
	if !exists {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

// QueryByEmail gets the specified user by email.
func (s *Store) QueryByEmail(ctx context.Context, email string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.byEmail[email]
	if !exists {
		return user.User{}, user.ErrNotFound
	}
	return s.byID[id], nil
}

// Count returns the number of users.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byID), nil
}
