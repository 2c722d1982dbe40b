package mining

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/zaplanje/coin/business/core/balance"
	"github.com/zaplanje/coin/business/sys/broker"
	"github.com/zaplanje/coin/foundation/logger"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// ready starts a rig that will complete on its next tick and returns it.
// The interval is long so only the test drives the ticks.
func ready(t *testing.T, c *Core, userID string) (*rig, chan struct{}) {
	if _, err := c.Start(context.Background(), userID); err != nil {
		t.Fatalf("\t%s\tShould be able to start mining : %v", failed, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	r := c.rigs[userID]
	r.progress = Target
	return r, r.stop
}

func TestResetDuringCompletion(t *testing.T) {
	book := balance.NewBook(balance.DefaultInitial)
	c := NewCore(Config{
		Log:       logger.NewTest(),
		Book:      book,
		Publisher: broker.Nop{},
		Interval:  time.Hour,
	})
	defer c.Shutdown()

	// signOut mirrors the order used when a member signs out.
	signOut := func(userID string) {
		c.Reset(userID)
		book.Reset(userID)
	}

	t.Log("Given the need to clear a member's state on sign out.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen the rig is reset before its final tick runs.", testID)
		{
			r, stop := ready(t, c, "user-1")
			signOut("user-1")

			if done := c.tick("user-1", r, stop); !done {
				t.Fatalf("\t%s\tTest %d:\tShould end the forgotten run.", failed, testID)
			}

			if got := book.Balance("user-1"); got != balance.DefaultInitial {
				t.Fatalf("\t%s\tTest %d:\tShould not pay the forgotten rig : got %s", failed, testID, got)
			}
			t.Logf("\t%s\tTest %d:\tShould not pay the forgotten rig.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen the final tick and the sign out race.", testID)
		{
			for i := 0; i < 200; i++ {
				userID := fmt.Sprintf("user-race-%d", i)
				r, stop := ready(t, c, userID)

				var wg sync.WaitGroup
				wg.Add(2)
				go func() {
					defer wg.Done()
					c.tick(userID, r, stop)
				}()
				go func() {
					defer wg.Done()
					signOut(userID)
				}()
				wg.Wait()

				if got := book.Balance(userID); got != balance.DefaultInitial {
					t.Fatalf("\t%s\tTest %d:\tShould leave the initial balance after sign out : run %d got %s", failed, testID, i, got)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould leave the initial balance after sign out.", success, testID)
		}
	}
}
