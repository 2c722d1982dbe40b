// Package walletgrp maintains the group of handlers for the member's wallet.
package walletgrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/zaplanje/coin/business/core/balance"
	"github.com/zaplanje/coin/business/core/wallet"
	"github.com/zaplanje/coin/business/sys/auth"
	"github.com/zaplanje/coin/business/web/errs"
	"github.com/zaplanje/coin/foundation/qr"
	"github.com/zaplanje/coin/foundation/web"
)

// Handlers manages the set of wallet endpoints.
type Handlers struct {
	Wallet *wallet.Core
}

// AppWallet is the wallet as shown to the member.
type AppWallet struct {
	Address string      `json:"address"`
	Balance balance.ZPL `json:"balance"`
	Unit    string      `json:"unit"`
}

// Query returns the address and balance of the member.
func (h Handlers) Query(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.NewAuthError("claims missing from context")
	}

	addr, err := h.Wallet.GetOrCreate(ctx, claims.Subject)
	if err != nil {
		return fmt.Errorf("getorcreate: userID[%s]: %w", claims.Subject, err)
	}

	wlt := AppWallet{
		Address: addr.Address,
		Balance: h.Wallet.Balance(claims.Subject),
		Unit:    balance.Unit,
	}

	return web.Respond(ctx, w, wlt, http.StatusOK)
}

// QR returns the address of the member as a QR code.
func (h Handlers) QR(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.NewAuthError("claims missing from context")
	}

	size, err := qr.ParseSize(r.URL.Query().Get("size"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	addr, err := h.Wallet.GetOrCreate(ctx, claims.Subject)
	if err != nil {
		return fmt.Errorf("getorcreate: userID[%s]: %w", claims.Subject, err)
	}

	png, err := qr.PNG(addr.Address, size)
	if err != nil {
		return fmt.Errorf("qr: %w", err)
	}

	return web.RespondPNG(ctx, w, png, http.StatusOK)
}

// Send transfers coins to another address.
func (h Handlers) Send(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.NewAuthError("claims missing from context")
	}

	var tr wallet.Transfer
	if err := web.Decode(r, &tr); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	rcpt, err := h.Wallet.Send(ctx, claims.Subject, tr)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrInvalidAmount),
			errors.Is(err, wallet.ErrMissingRecipient),
			errors.Is(err, wallet.ErrSelfTransfer):
			return errs.NewTrusted(err, http.StatusBadRequest)
		case errors.Is(err, balance.ErrInsufficientFunds):
			return errs.NewTrusted(err, http.StatusUnprocessableEntity)
		}
		return fmt.Errorf("send: userID[%s]: %w", claims.Subject, err)
	}

	return web.Respond(ctx, w, rcpt, http.StatusOK)
}
