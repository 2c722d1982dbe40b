package stats_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/zaplanje/coin/business/core/stats"
	"github.com/zaplanje/coin/business/core/stats/stores/statsmem"
	"github.com/zaplanje/coin/business/sys/broker"
	"github.com/zaplanje/coin/foundation/events"
	"github.com/zaplanje/coin/foundation/logger"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) Publish(ctx context.Context, eventType string, key string, data any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventType)
	return nil
}

func (r *recorder) Close() error { return nil }

var _ broker.Publisher = (*recorder)(nil)

func TestIncrementUsers(t *testing.T) {
	t.Log("Given the need to count registered users in realtime.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a user registers.", testID)
		{
			ctx := context.Background()
			evts := events.New()
			defer evts.Shutdown()

			ch := evts.Acquire("test", stats.Topic)
			pub := recorder{}

			core := stats.NewCore(logger.NewTest(), statsmem.NewStore(), evts, &pub)

			total, err := core.TotalUsers(ctx)
			if err != nil || total != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould start with no users : %d, %v", failed, testID, total, err)
			}
			t.Logf("\t%s\tTest %d:\tShould start with no users.", success, testID)

			st, err := core.IncrementUsers(ctx)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to increment : %v", failed, testID, err)
			}

			if st.TotalUsers != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould have one user : %d", failed, testID, st.TotalUsers)
			}
			t.Logf("\t%s\tTest %d:\tShould have one user.", success, testID)

			evt := <-ch
			var got stats.Statistics
			err = json.Unmarshal([]byte(evt.Data), &got)
			if evt.Topic != stats.Topic || err != nil || got.TotalUsers != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould notify subscribers : %+v", failed, testID, evt)
			}
			t.Logf("\t%s\tTest %d:\tShould notify subscribers.", success, testID)

			if len(pub.events) != 1 || pub.events[0] != broker.StatisticsChanged {
				t.Fatalf("\t%s\tTest %d:\tShould publish the change : %v", failed, testID, pub.events)
			}
			t.Logf("\t%s\tTest %d:\tShould publish the change.", success, testID)
		}
	}
}
