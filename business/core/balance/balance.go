// Package balance maintains the in-memory wallet balances of signed in users.
// Balances are never persisted: a new session starts from the initial value.
package balance

import (
	"errors"
	"sync"
)

// Set of error variables for balance changes.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
)

// DefaultInitial is the balance every wallet opens with.
const DefaultInitial ZPL = 123456

// Book represents the data representation to maintain user balances.
type Book struct {
	initial ZPL
	book    map[string]ZPL
	mu      sync.RWMutex
}

// NewBook constructs a new balance book where every account opens with the
// specified initial balance.
func NewBook(initial ZPL) *Book {
	return &Book{
		initial: initial,
		book:    make(map[string]ZPL),
	}
}

// Initial returns the balance new accounts open with.
func (b *Book) Initial() ZPL {
	return b.initial
}

// Balance returns the current balance for the user.
func (b *Book) Balance(userID string) ZPL {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, exists := b.book[userID]
	if !exists {
		return b.initial
	}
	return value
}

// Credit gives the user the specified amount and returns the new balance.
func (b *Book) Credit(userID string, amount ZPL) (ZPL, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	value := b.open(userID) + amount
	b.book[userID] = value

	return value, nil
}

// Debit takes the specified amount from the user and returns the new
// balance. The balance never goes below zero.
func (b *Book) Debit(userID string, amount ZPL) (ZPL, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	value := b.open(userID)
	if amount > value {
		return value, ErrInsufficientFunds
	}

	value -= amount
	b.book[userID] = value

	return value, nil
}

// Reset puts the user back to the initial balance.
func (b *Book) Reset(userID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.book, userID)
}

// Copy makes a copy of the balances of every user that transacted.
func (b *Book) Copy() map[string]ZPL {
	b.mu.RLock()
	defer b.mu.RUnlock()

	book := make(map[string]ZPL, len(b.book))
	for userID, value := range b.book {
		book[userID] = value
	}
	return book
}

// open returns the balance of the user, opening the account at the
// initial value. The caller must hold the write lock.
func (b *Book) open(userID string) ZPL {
	value, exists := b.book[userID]
	if !exists {
		value = b.initial
		b.book[userID] = value
	}
	return value
}
