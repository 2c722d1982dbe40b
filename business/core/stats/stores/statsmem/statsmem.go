// Package statsmem keeps the statistics record in memory.
package statsmem

import (
	"context"
	"sync"
	"time"

	"github.com/zaplanje/coin/business/core/stats"
)

// Store manages the set of APIs for statistics access.
type Store struct {
	mu sync.Mutex
	st stats.Statistics
}

// NewStore constructs the api for data access.
func NewStore() *Store {
	return &Store{
		st: stats.Statistics{DateUpdated: time.Now().UTC()},
	}
}

// Query returns the statistics record.
func (s *Store) Query(ctx context.Context) (stats.Statistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.st, nil
}

// IncrementUsers adds one to the total users.
func (s *Store) IncrementUsers(ctx context.Context, now time.Time) (stats.Statistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.TotalUsers++
	s.st.DateUpdated = now

	return s.st, nil
}
