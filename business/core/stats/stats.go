// Package stats provides the core business API for the community statistics.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zaplanje/coin/business/sys/broker"
	"go.uber.org/zap"
)

// Topic is the events hub topic carrying statistics changes.
const Topic = "statistics"

// Statistics represents the single statistics record of the community.
type Statistics struct {
	TotalUsers  int       `json:"total_users"`
	DateUpdated time.Time `json:"date_updated"`
}

// Storer declares the behavior this package needs to persist and retrieve data.
type Storer interface {
	Query(ctx context.Context) (Statistics, error)
	IncrementUsers(ctx context.Context, now time.Time) (Statistics, error)
}

// Notifier sends realtime notifications to subscribers.
type Notifier interface {
	Send(topic string, data string)
}

// Core manages the set of APIs for statistics access.
type Core struct {
	log    *zap.SugaredLogger
	storer Storer
	notify Notifier
	pub    broker.Publisher
}

// NewCore constructs a core for statistics api access.
func NewCore(log *zap.SugaredLogger, storer Storer, notify Notifier, pub broker.Publisher) *Core {
	return &Core{
		log:    log,
		storer: storer,
		notify: notify,
		pub:    pub,
	}
}

// Query returns the current statistics record.
func (c *Core) Query(ctx context.Context) (Statistics, error) {
	st, err := c.storer.Query(ctx)
	if err != nil {
		return Statistics{}, fmt.Errorf("query: %w", err)
	}
	return st, nil
}

// TotalUsers returns the number of registered users.
func (c *Core) TotalUsers(ctx context.Context) (int, error) {
	st, err := c.Query(ctx)
	if err != nil {
		return 0, err
	}
	return st.TotalUsers, nil
}

// IncrementUsers records one more registered user and notifies subscribers
// of the change.
func (c *Core) IncrementUsers(ctx context.Context) (Statistics, error) {
	st, err := c.storer.IncrementUsers(ctx, time.Now().UTC())
	if err != nil {
		return Statistics{}, fmt.Errorf("increment: %w", err)
	}

	if data, err := json.Marshal(st); err == nil {
		c.notify.Send(Topic, string(data))
	}

	if err := c.pub.Publish(ctx, broker.StatisticsChanged, "statistics", st); err != nil {
		c.log.Errorw("stats", "status", "publish statistics", "ERROR", err)
	}

	return st, nil
}
