// Package mininggrp maintains the group of handlers for simulated mining.
package mininggrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/zaplanje/coin/business/core/mining"
	"github.com/zaplanje/coin/business/sys/auth"
	"github.com/zaplanje/coin/business/web/errs"
	"github.com/zaplanje/coin/foundation/web"
)

// Handlers manages the set of mining endpoints.
type Handlers struct {
	Mining *mining.Core
}

// Start begins a mining run for the member.
func (h Handlers) Start(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.NewAuthError("claims missing from context")
	}

	st, err := h.Mining.Start(ctx, claims.Subject)
	if err != nil {
		switch {
		case errors.Is(err, mining.ErrAlreadyMining):
			return errs.NewTrusted(err, http.StatusConflict)
		case errors.Is(err, mining.ErrShutdown):
			return errs.NewTrusted(err, http.StatusServiceUnavailable)
		}
		return fmt.Errorf("start: userID[%s]: %w", claims.Subject, err)
	}

	return web.Respond(ctx, w, st, http.StatusAccepted)
}

// Status returns the state of the member's rig.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.NewAuthError("claims missing from context")
	}

	return web.Respond(ctx, w, h.Mining.Status(claims.Subject), http.StatusOK)
}

// Stop cancels the member's mining run.
func (h Handlers) Stop(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.NewAuthError("claims missing from context")
	}

	st, err := h.Mining.Stop(claims.Subject)
	if err != nil {
		if errors.Is(err, mining.ErrNotMining) {
			return errs.NewTrusted(err, http.StatusConflict)
		}
		return fmt.Errorf("stop: userID[%s]: %w", claims.Subject, err)
	}

	return web.Respond(ctx, w, st, http.StatusOK)
}
