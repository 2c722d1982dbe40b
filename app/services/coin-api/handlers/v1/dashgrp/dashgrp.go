// Package dashgrp maintains the group of handlers for the landing page.
package dashgrp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zaplanje/coin/business/core/stats"
	"github.com/zaplanje/coin/business/web/errs"
	"github.com/zaplanje/coin/foundation/qr"
	"github.com/zaplanje/coin/foundation/web"
	"go.uber.org/zap"
)

// DefaultAppLink is where the application is published.
const DefaultAppLink = "https://schebet-koin.netlify.app/"

// Handlers manages the set of dashboard endpoints.
type Handlers struct {
	Log      *zap.SugaredLogger
	Stats    *stats.Core
	AppLink  string
	MaxUsers int
}

// Query returns the dashboard content.
func (h Handlers) Query(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	dash := content(h.AppLink, h.MaxUsers)

	total, err := h.Stats.TotalUsers(ctx)
	if err != nil {
		h.Log.Errorw("dashboard", "traceid", web.GetTraceID(ctx), "status", "total users", "ERROR", err)
	}
	dash.TotalUsers = total

	return web.Respond(ctx, w, dash, http.StatusOK)
}

// QR returns the application link as a QR code.
func (h Handlers) QR(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	size, err := qr.ParseSize(r.URL.Query().Get("size"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	png, err := qr.PNG(h.AppLink, size)
	if err != nil {
		return fmt.Errorf("qr: %w", err)
	}

	return web.RespondPNG(ctx, w, png, http.StatusOK)
}
