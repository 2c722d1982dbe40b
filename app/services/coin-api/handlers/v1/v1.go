// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"context"
	"net/http"

	"github.com/zaplanje/coin/app/services/coin-api/handlers/v1/authgrp"
	"github.com/zaplanje/coin/app/services/coin-api/handlers/v1/dashgrp"
	"github.com/zaplanje/coin/app/services/coin-api/handlers/v1/marketgrp"
	"github.com/zaplanje/coin/app/services/coin-api/handlers/v1/mininggrp"
	"github.com/zaplanje/coin/app/services/coin-api/handlers/v1/statsgrp"
	"github.com/zaplanje/coin/app/services/coin-api/handlers/v1/trangrp"
	"github.com/zaplanje/coin/app/services/coin-api/handlers/v1/walletgrp"
	"github.com/zaplanje/coin/business/core/balance"
	"github.com/zaplanje/coin/business/core/market"
	"github.com/zaplanje/coin/business/core/mining"
	"github.com/zaplanje/coin/business/core/stats"
	"github.com/zaplanje/coin/business/core/user"
	"github.com/zaplanje/coin/business/core/wallet"
	"github.com/zaplanje/coin/business/sys/auth"
	"github.com/zaplanje/coin/business/web/v1/mid"
	"github.com/zaplanje/coin/foundation/events"
	"github.com/zaplanje/coin/foundation/web"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log       *zap.SugaredLogger
	Auth      *auth.Auth
	Evts      *events.Events
	Book      *balance.Book
	User      *user.Core
	Stats     *stats.Core
	Wallet    *wallet.Core
	Mining    *mining.Core
	Market    *market.Core
	AppLink   string
	MaxUsers  int
	AuthRate  rate.Limit
	AuthBurst int
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	authen := mid.Authenticate(cfg.Auth)
	limit := mid.RateLimit(cfg.AuthRate, cfg.AuthBurst)

	// Signing out forgets everything held in memory for the member.
	reset := func(ctx context.Context, userID string) {
		cfg.Mining.Reset(userID)
		cfg.Book.Reset(userID)
		if err := cfg.Market.ClearCart(ctx, userID); err != nil {
			cfg.Log.Errorw("signout", "traceid", web.GetTraceID(ctx), "userID", userID, "ERROR", err)
		}
	}

	ath := authgrp.Handlers{
		Log:    cfg.Log,
		User:   cfg.User,
		Wallet: cfg.Wallet,
		Auth:   cfg.Auth,
		Evts:   cfg.Evts,
		Reset:  reset,
	}
	app.Handle(http.MethodPost, version, "/auth/signup", ath.SignUp, limit)
	app.Handle(http.MethodPost, version, "/auth/signin", ath.SignIn, limit)
	app.Handle(http.MethodPost, version, "/auth/signout", ath.SignOut, authen)
	app.Handle(http.MethodGet, version, "/auth/session", ath.Session, authen)
	app.Handle(http.MethodGet, version, "/auth/events", ath.Events, authen)
	app.Handle(http.MethodPut, version, "/auth/password", ath.UpdatePassword, authen)

	sts := statsgrp.Handlers{
		Stats: cfg.Stats,
		Evts:  cfg.Evts,
	}
	app.Handle(http.MethodGet, version, "/stats", sts.Query)
	app.Handle(http.MethodGet, version, "/stats/events", sts.Events)

	wlt := walletgrp.Handlers{
		Wallet: cfg.Wallet,
	}
	app.Handle(http.MethodGet, version, "/wallet", wlt.Query, authen)
	app.Handle(http.MethodGet, version, "/wallet/qr", wlt.QR, authen)
	app.Handle(http.MethodPost, version, "/wallet/send", wlt.Send, authen)

	mng := mininggrp.Handlers{
		Mining: cfg.Mining,
	}
	app.Handle(http.MethodPost, version, "/mining/start", mng.Start, authen)
	app.Handle(http.MethodGet, version, "/mining/status", mng.Status, authen)
	app.Handle(http.MethodPost, version, "/mining/stop", mng.Stop, authen)

	mkt := marketgrp.Handlers{
		Market: cfg.Market,
	}
	app.Handle(http.MethodGet, version, "/market/products", mkt.Products)
	app.Handle(http.MethodGet, version, "/market/stats", mkt.Stats)
	app.Handle(http.MethodGet, version, "/market/cart", mkt.Cart, authen)
	app.Handle(http.MethodPost, version, "/market/cart/:product_id", mkt.Add, authen)
	app.Handle(http.MethodPut, version, "/market/cart/:product_id", mkt.Update, authen)
	app.Handle(http.MethodDelete, version, "/market/cart/:product_id", mkt.Remove, authen)
	app.Handle(http.MethodPost, version, "/market/checkout", mkt.Checkout, authen)

	trn := trangrp.Handlers{}
	app.Handle(http.MethodGet, version, "/transactions", trn.Query)
	app.Handle(http.MethodGet, version, "/transactions/stats", trn.Stats)

	dsh := dashgrp.Handlers{
		Log:      cfg.Log,
		Stats:    cfg.Stats,
		AppLink:  cfg.AppLink,
		MaxUsers: cfg.MaxUsers,
	}
	app.Handle(http.MethodGet, version, "/dashboard", dsh.Query)
	app.Handle(http.MethodGet, version, "/dashboard/qr", dsh.QR)
}
