package market

import "sync"

// pending tracks the users with a checkout underway.
type pending struct {
	mu    sync.Mutex
	users map[string]struct{}
}

func newPending() *pending {
	return &pending{
		users: make(map[string]struct{}),
	}
}

func (p *pending) acquire(userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.users[userID]; exists {
		return false
	}

	p.users[userID] = struct{}{}
	return true
}

func (p *pending) release(userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.users, userID)
}
