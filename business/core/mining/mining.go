// Package mining simulates mining rigs. A rig advances a progress counter on
// a timer and pays a fixed reward into the balance book when the counter
// reaches the target. No real proof of work is performed.
package mining

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/zaplanje/coin/business/core/balance"
	"github.com/zaplanje/coin/business/sys/broker"
	"go.uber.org/zap"
)

// Set of error variables for mining operations.
var (
	ErrAlreadyMining = errors.New("mining is already in progress")
	ErrNotMining     = errors.New("mining is not in progress")
	ErrShutdown      = errors.New("mining has been shut down")
)

// Default settings for a rig.
const (
	DefaultInterval    = time.Second
	DefaultStep        = 10
	DefaultReward      = balance.ZPL(10000)
	DefaultCelebration = 5 * time.Second
	DefaultPublish     = 5 * time.Second
	Target             = 100
)

// Status is a snapshot of a user's rig.
type Status struct {
	Mining      bool        `json:"mining"`
	Progress    int         `json:"progress"`
	Celebrating bool        `json:"celebrating"`
	Blocks      int         `json:"blocks"`
	Reward      balance.ZPL `json:"reward"`
	Balance     balance.ZPL `json:"balance"`
}

// Config represents the settings of the mining core.
type Config struct {
	Log         *zap.SugaredLogger
	Book        *balance.Book
	Publisher   broker.Publisher
	Interval    time.Duration
	Step        int
	Reward      balance.ZPL
	Celebration time.Duration

	// PublishTimeout bounds how long a completed run waits on the broker.
	PublishTimeout time.Duration
}

// rig holds the state of a single user's mining run.
type rig struct {
	mining         bool
	progress       int
	blocks         int
	celebrateUntil time.Time
	stop           chan struct{}
}

// Core manages the set of APIs for mining.
type Core struct {
	log         *zap.SugaredLogger
	book        *balance.Book
	pub         broker.Publisher
	interval    time.Duration
	step        int
	reward      balance.ZPL
	celebration time.Duration
	publish     time.Duration

	mu       sync.Mutex
	rigs     map[string]*rig
	wg       sync.WaitGroup
	shut     chan struct{}
	shutOnce sync.Once
}

// NewCore constructs a core for mining api access.
func NewCore(cfg Config) *Core {
	c := Core{
		log:         cfg.Log,
		book:        cfg.Book,
		pub:         cfg.Publisher,
		interval:    cfg.Interval,
		step:        cfg.Step,
		reward:      cfg.Reward,
		celebration: cfg.Celebration,
		publish:     cfg.PublishTimeout,
		rigs:        make(map[string]*rig),
		shut:        make(chan struct{}),
	}

	if c.interval <= 0 {
		c.interval = DefaultInterval
	}
	if c.step <= 0 {
		c.step = DefaultStep
	}
	if c.reward <= 0 {
		c.reward = DefaultReward
	}
	if c.celebration <= 0 {
		c.celebration = DefaultCelebration
	}
	if c.publish <= 0 {
		c.publish = DefaultPublish
	}

	return &c
}

// Start begins a mining run for the user.
func (c *Core) Start(ctx context.Context, userID string) (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isShutdown() {
		return Status{}, ErrShutdown
	}

	r, exists := c.rigs[userID]
	if !exists {
		r = &rig{}
		c.rigs[userID] = r
	}

	if r.mining {
		return c.status(userID, r), ErrAlreadyMining
	}

	r.mining = true
	r.progress = 0
	r.stop = make(chan struct{})

	c.wg.Add(1)
	go func(stop chan struct{}) {
		defer c.wg.Done()
		c.run(userID, r, stop)
	}(r.stop)

	c.log.Infow("mining", "status", "started", "userID", userID)

	return c.status(userID, r), nil
}

// Status returns the state of the user's rig.
func (c *Core) Status(userID string) Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, exists := c.rigs[userID]
	if !exists {
		return Status{Reward: c.reward, Balance: c.book.Balance(userID)}
	}

	return c.status(userID, r)
}

// Stop cancels the running mining run without paying a reward.
func (c *Core) Stop(userID string) (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, exists := c.rigs[userID]
	if !exists {
		return Status{Reward: c.reward, Balance: c.book.Balance(userID)}, ErrNotMining
	}

	if !r.mining {
		return c.status(userID, r), ErrNotMining
	}

	close(r.stop)
	r.mining = false
	r.progress = 0

	c.log.Infow("mining", "status", "stopped", "userID", userID)

	return c.status(userID, r), nil
}

// Reset stops and forgets the user's rig. Once Reset returns no reward of
// the forgotten rig can reach the balance book.
func (c *Core) Reset(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, exists := c.rigs[userID]
	if !exists {
		return
	}

	if r.mining {
		close(r.stop)
		r.mining = false
	}
	delete(c.rigs, userID)
}

// Shutdown stops every rig and waits for their goroutines to finish.
func (c *Core) Shutdown() {
	c.log.Infow("mining", "status", "shutdown started")
	defer c.log.Infow("mining", "status", "shutdown completed")

	c.shutOnce.Do(func() {
		close(c.shut)
	})
	c.wg.Wait()
}

// =============================================================================

// run advances the rig on every tick until the run completes, is stopped
// or the core shuts down.
func (c *Core) run(userID string, r *rig, stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if done := c.tick(userID, r, stop); done {
				return
			}

		case <-stop:
			return

		case <-c.shut:
			return
		}
	}
}

// tick applies one timer step to the rig. It reports true once this run
// has finished.
func (c *Core) tick(userID string, r *rig, stop chan struct{}) bool {
	c.mu.Lock()

	// A stop followed by a new start replaces the channel. A reset removes
	// the rig from the map.
	if !r.mining || r.stop != stop || c.rigs[userID] != r {
		c.mu.Unlock()
		return true
	}

	if r.progress < Target {
		r.progress = min(r.progress+c.step, Target)
		c.mu.Unlock()
		return false
	}

	// The reward is paid under the lock so a concurrent Reset either sees
	// the credit already made or the rig already gone.
	total, err := c.book.Credit(userID, c.reward)
	if err != nil {
		c.mu.Unlock()
		c.log.Errorw("mining", "status", "credit reward", "userID", userID, "ERROR", err)
		return true
	}

	r.mining = false
	r.progress = 0
	r.blocks++
	r.celebrateUntil = time.Now().Add(c.celebration)
	blocks := r.blocks
	c.mu.Unlock()

	c.log.Infow("mining", "status", "block mined", "userID", userID, "blocks", blocks, "balance", total.String())

	evt := struct {
		Reward  balance.ZPL `json:"reward"`
		Balance balance.ZPL `json:"balance"`
		Blocks  int         `json:"blocks"`
	}{c.reward, total, blocks}

	ctx, cancel := context.WithTimeout(context.Background(), c.publish)
	defer cancel()

	if err := c.pub.Publish(ctx, broker.MiningCompleted, userID, evt); err != nil {
		c.log.Errorw("mining", "status", "publish block", "userID", userID, "ERROR", err)
	}

	return true
}

// status builds a snapshot. The caller must hold the lock.
func (c *Core) status(userID string, r *rig) Status {
	return Status{
		Mining:      r.mining,
		Progress:    r.progress,
		Celebrating: time.Now().Before(r.celebrateUntil),
		Blocks:      r.blocks,
		Reward:      c.reward,
		Balance:     c.book.Balance(userID),
	}
}

// isShutdown is used to test if a shutdown has been signaled.
func (c *Core) isShutdown() bool {
	select {
	case <-c.shut:
		return true
	default:
		return false
	}
}
