// Package statsgrp maintains the group of handlers for community statistics.
package statsgrp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zaplanje/coin/business/core/stats"
	"github.com/zaplanje/coin/foundation/events"
	"github.com/zaplanje/coin/foundation/web"
)

// Handlers manages the set of statistics endpoints.
type Handlers struct {
	Stats *stats.Core
	Evts  *events.Events
}

// Query returns the statistics record.
func (h Handlers) Query(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	st, err := h.Stats.Query(ctx)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	return web.Respond(ctx, w, st, http.StatusOK)
}

// Events handles a web socket delivering every change of the statistics.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	ch := h.Evts.Acquire(v.TraceID, stats.Topic)
	defer h.Evts.Release(v.TraceID)

	return web.Stream(ctx, w, r, ch)
}
