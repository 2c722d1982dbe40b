// Package trangrp maintains the group of handlers for the transaction
// history.
package trangrp

import (
	"context"
	"errors"
	"net/http"

	"github.com/zaplanje/coin/business/core/history"
	"github.com/zaplanje/coin/business/web/errs"
	"github.com/zaplanje/coin/foundation/web"
)

// Handlers manages the set of transaction history endpoints.
type Handlers struct{}

// Query returns the history rows, optionally filtered by ?type=.
func (h Handlers) Query(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	txs, err := history.Query(r.URL.Query().Get("type"))
	if err != nil {
		if errors.Is(err, history.ErrInvalidType) {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return err
	}

	return web.Respond(ctx, w, txs, http.StatusOK)
}

// Stats returns the statistic cards and charts.
func (h Handlers) Stats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, history.Statistics(), http.StatusOK)
}
