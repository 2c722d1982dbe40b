// Package marketgrp maintains the group of handlers for the marketplace.
package marketgrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/zaplanje/coin/business/core/balance"
	"github.com/zaplanje/coin/business/core/market"
	"github.com/zaplanje/coin/business/sys/auth"
	"github.com/zaplanje/coin/business/sys/validate"
	"github.com/zaplanje/coin/business/web/errs"
	"github.com/zaplanje/coin/foundation/web"
)

// Handlers manages the set of marketplace endpoints.
type Handlers struct {
	Market *market.Core
}

// AppQuantity is the body of a quantity change.
type AppQuantity struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// Validate checks the data in the model is considered clean.
func (app AppQuantity) Validate() error {
	if err := validate.Check(app); err != nil {
		return err
	}
	return nil
}

// Products returns the catalog with current stock.
func (h Handlers) Products(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Market.Products(ctx), http.StatusOK)
}

// Stats returns the marketplace charts.
func (h Handlers) Stats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Market.Stats(), http.StatusOK)
}

// Cart returns the member's cart.
func (h Handlers) Cart(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.NewAuthError("claims missing from context")
	}

	sum, err := h.Market.Cart(ctx, claims.Subject)
	if err != nil {
		return fmt.Errorf("cart: userID[%s]: %w", claims.Subject, err)
	}

	return web.Respond(ctx, w, sum, http.StatusOK)
}

// Add puts one more of the product in the member's cart.
func (h Handlers) Add(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.NewAuthError("claims missing from context")
	}

	productID, err := productID(r)
	if err != nil {
		return err
	}

	sum, err := h.Market.AddToCart(ctx, claims.Subject, productID)
	if err != nil {
		return response(err)
	}

	return web.Respond(ctx, w, sum, http.StatusOK)
}

// Update sets the quantity of a product in the member's cart.
func (h Handlers) Update(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.NewAuthError("claims missing from context")
	}

	productID, err := productID(r)
	if err != nil {
		return err
	}

	var aq AppQuantity
	if err := web.Decode(r, &aq); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	sum, err := h.Market.UpdateQuantity(ctx, claims.Subject, productID, aq.Quantity)
	if err != nil {
		return response(err)
	}

	return web.Respond(ctx, w, sum, http.StatusOK)
}

// Remove takes the product out of the member's cart.
func (h Handlers) Remove(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.NewAuthError("claims missing from context")
	}

	productID, err := productID(r)
	if err != nil {
		return err
	}

	sum, err := h.Market.RemoveFromCart(ctx, claims.Subject, productID)
	if err != nil {
		return response(err)
	}

	return web.Respond(ctx, w, sum, http.StatusOK)
}

// Checkout buys everything in the member's cart.
func (h Handlers) Checkout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.NewAuthError("claims missing from context")
	}

	rcpt, err := h.Market.Checkout(ctx, claims.Subject)
	if err != nil {
		return response(err)
	}

	return web.Respond(ctx, w, rcpt, http.StatusOK)
}

// =============================================================================

func productID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(web.Param(r, "product_id"))
	if err != nil {
		return 0, validate.NewFieldsError("product_id", err)
	}
	return id, nil
}

// response maps marketplace errors onto trusted errors.
func response(err error) error {
	switch {
	case errors.Is(err, market.ErrProductNotFound),
		errors.Is(err, market.ErrNotInCart):
		return errs.NewTrusted(err, http.StatusNotFound)

	case errors.Is(err, market.ErrSoldOut),
		errors.Is(err, market.ErrOutOfStock),
		errors.Is(err, market.ErrInsufficientStock),
		errors.Is(err, market.ErrCheckoutInProgress):
		return errs.NewTrusted(err, http.StatusConflict)

	case errors.Is(err, market.ErrEmptyCart):
		return errs.NewTrusted(err, http.StatusBadRequest)

	case errors.Is(err, balance.ErrInsufficientFunds):
		return errs.NewTrusted(err, http.StatusUnprocessableEntity)
	}

	return err
}
