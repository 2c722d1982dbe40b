package mining_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/zaplanje/coin/business/core/balance"
	"github.com/zaplanje/coin/business/core/mining"
	"github.com/zaplanje/coin/business/sys/broker"
	"github.com/zaplanje/coin/foundation/logger"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func newCore(interval time.Duration) (*mining.Core, *balance.Book) {
	book := balance.NewBook(balance.DefaultInitial)

	core := mining.NewCore(mining.Config{
		Log:       logger.NewTest(),
		Book:      book,
		Publisher: broker.Nop{},
		Interval:  interval,
	})

	return core, book
}

func TestMiningRun(t *testing.T) {
	t.Log("Given the need to mine a block.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a run completes.", testID)
		{
			core, book := newCore(5 * time.Millisecond)
			defer core.Shutdown()

			if _, err := core.Start(context.Background(), "user-1"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to start mining : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to start mining.", success, testID)

			if _, err := core.Start(context.Background(), "user-1"); !errors.Is(err, mining.ErrAlreadyMining) {
				t.Fatalf("\t%s\tTest %d:\tShould reject a second start : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject a second start.", success, testID)

			last := 0
			deadline := time.Now().Add(5 * time.Second)
			var st mining.Status
			for {
				st = core.Status("user-1")
				if !st.Mining {
					break
				}

				if st.Progress < last || st.Progress > mining.Target {
					t.Fatalf("\t%s\tTest %d:\tShould advance progress monotonically : %d after %d", failed, testID, st.Progress, last)
				}
				last = st.Progress

				if time.Now().After(deadline) {
					t.Fatalf("\t%s\tTest %d:\tShould complete the run in time : progress %d", failed, testID, st.Progress)
				}
				time.Sleep(time.Millisecond)
			}
			t.Logf("\t%s\tTest %d:\tShould advance progress monotonically.", success, testID)

			if st.Progress != 0 || st.Blocks != 1 || !st.Celebrating {
				t.Fatalf("\t%s\tTest %d:\tShould reset after the block : %+v", failed, testID, st)
			}
			t.Logf("\t%s\tTest %d:\tShould reset after the block.", success, testID)

			exp := balance.DefaultInitial + mining.DefaultReward
			if got := book.Balance("user-1"); got != exp {
				t.Fatalf("\t%s\tTest %d:\tShould credit the reward : got %s, exp %s", failed, testID, got, exp)
			}
			t.Logf("\t%s\tTest %d:\tShould credit the reward.", success, testID)
		}
	}
}

func TestMiningStop(t *testing.T) {
	t.Log("Given the need to cancel mining.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a run is stopped.", testID)
		{
			core, book := newCore(time.Hour)
			defer core.Shutdown()

			if _, err := core.Stop("user-1"); !errors.Is(err, mining.ErrNotMining) {
				t.Fatalf("\t%s\tTest %d:\tShould reject stopping an idle rig : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject stopping an idle rig.", success, testID)

			if _, err := core.Start(context.Background(), "user-1"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to start mining : %v", failed, testID, err)
			}

			st, err := core.Stop("user-1")
			if err != nil || st.Mining {
				t.Fatalf("\t%s\tTest %d:\tShould be able to stop mining : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to stop mining.", success, testID)

			if book.Balance("user-1") != balance.DefaultInitial {
				t.Fatalf("\t%s\tTest %d:\tShould not pay a reward.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould not pay a reward.", success, testID)

			core.Shutdown()
			if _, err := core.Start(context.Background(), "user-1"); !errors.Is(err, mining.ErrShutdown) {
				t.Fatalf("\t%s\tTest %d:\tShould reject starts after shutdown : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject starts after shutdown.", success, testID)
		}
	}
}

// stuckPublisher blocks every publish until the context ends, like a writer
// retrying against a broker that is down.
type stuckPublisher struct {
	once   sync.Once
	called chan struct{}
}

func (p *stuckPublisher) Publish(ctx context.Context, eventType string, key string, data any) error {
	p.once.Do(func() { close(p.called) })
	<-ctx.Done()
	return ctx.Err()
}

func (p *stuckPublisher) Close() error {
	return nil
}

func TestMiningShutdownBrokerDown(t *testing.T) {
	t.Log("Given the need to shut down while the broker is unreachable.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a completed run is stuck publishing.", testID)
		{
			pub := stuckPublisher{called: make(chan struct{})}
			book := balance.NewBook(balance.DefaultInitial)

			core := mining.NewCore(mining.Config{
				Log:            logger.NewTest(),
				Book:           book,
				Publisher:      &pub,
				Interval:       time.Millisecond,
				Step:           mining.Target,
				PublishTimeout: 50 * time.Millisecond,
			})

			if _, err := core.Start(context.Background(), "user-1"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to start mining : %v", failed, testID, err)
			}

			select {
			case <-pub.called:
			case <-time.After(5 * time.Second):
				t.Fatalf("\t%s\tTest %d:\tShould reach the publish step.", failed, testID)
			}

			done := make(chan struct{})
			go func() {
				core.Shutdown()
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatalf("\t%s\tTest %d:\tShould finish shutdown within the publish timeout.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould finish shutdown within the publish timeout.", success, testID)

			exp := balance.DefaultInitial + mining.DefaultReward
			if got := book.Balance("user-1"); got != exp {
				t.Fatalf("\t%s\tTest %d:\tShould keep the reward : got %s, exp %s", failed, testID, got, exp)
			}
			t.Logf("\t%s\tTest %d:\tShould keep the reward.", success, testID)
		}
	}
}
