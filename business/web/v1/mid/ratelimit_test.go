package mid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zaplanje/coin/business/web/errs"
	"github.com/zaplanje/coin/business/web/v1/mid"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestRateLimit(t *testing.T) {
	ok := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return nil
	}
	h := mid.RateLimit(0, 2)(ok)

	call := func(addr string) error {
		r := httptest.NewRequest(http.MethodPost, "/v1/auth/signin", nil)
		r.RemoteAddr = addr
		return h(context.Background(), httptest.NewRecorder(), r)
	}

	t.Log("Given the need to slow down clients hammering the sign in route.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a client uses up its burst.", testID)
		{
			for i := 0; i < 2; i++ {
				if err := call("10.0.0.1:5000"); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould allow request %d : %v", failed, testID, i, err)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould allow the burst.", success, testID)

			err := call("10.0.0.1:5001")
			te := errs.GetTrusted(err)
			if te == nil || te.Status != http.StatusTooManyRequests {
				t.Fatalf("\t%s\tTest %d:\tShould reject the next request with 429 : got %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject the next request with 429.", success, testID)

			if err := call("10.0.0.2:5000"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould not limit other clients : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould not limit other clients.", success, testID)
		}
	}
}
