package mid

import (
	"context"
	"net/http"

	"github.com/zaplanje/coin/business/sys/auth"
	"github.com/zaplanje/coin/foundation/web"
)

// Authenticate validates the session token of the request and puts the
// claims in the context.
func Authenticate(a *auth.Auth) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			claims, err := a.Authenticate(ctx, web.BearerToken(r))
			if err != nil {
				return err
			}

			ctx = auth.SetClaims(ctx, claims)

			return handler(ctx, w, r)
		}

		return h
	}

	return m
}
