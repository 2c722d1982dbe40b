package mid

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/zaplanje/coin/business/web/errs"
	"github.com/zaplanje/coin/foundation/web"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when a client sends requests too quickly.
var ErrRateLimited = errors.New("rate limit exceeded")

// limiters keeps one token bucket per client address.
type limiters struct {
	mu    sync.Mutex
	ips   map[string]*rate.Limiter
	rate  rate.Limit
	burst int
}

func (l *limiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists := l.ips[ip]; exists {
		return limiter
	}

	limiter := rate.NewLimiter(l.rate, l.burst)
	l.ips[ip] = limiter
	return limiter
}

// RateLimit rejects clients that exceed limit requests per second with
// bursts of burst.
func RateLimit(limit rate.Limit, burst int) web.Middleware {
	l := limiters{
		ips:   make(map[string]*rate.Limiter),
		rate:  limit,
		burst: burst,
	}

	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !l.get(ip).Allow() {
				return errs.NewTrusted(ErrRateLimited, http.StatusTooManyRequests)
			}

			return handler(ctx, w, r)
		}

		return h
	}

	return m
}
