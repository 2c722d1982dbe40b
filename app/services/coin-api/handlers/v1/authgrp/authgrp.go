// Package authgrp maintains the group of handlers for joining the community
// and managing sessions.
package authgrp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/zaplanje/coin/business/core/user"
	"github.com/zaplanje/coin/business/core/wallet"
	"github.com/zaplanje/coin/business/sys/auth"
	"github.com/zaplanje/coin/business/web/errs"
	"github.com/zaplanje/coin/foundation/events"
	"github.com/zaplanje/coin/foundation/web"
	"go.uber.org/zap"
)

// Topic returns the events topic carrying auth changes for a user.
func Topic(userID string) string {
	return "auth:" + userID
}

// Handlers manages the set of auth endpoints.
type Handlers struct {
	Log    *zap.SugaredLogger
	User   *user.Core
	Wallet *wallet.Core
	Auth   *auth.Auth
	Evts   *events.Events
	Reset  func(ctx context.Context, userID string)
}

// SignUp adds a new member and starts a session for them.
func (h Handlers) SignUp(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var nu user.NewUser
	if err := web.Decode(r, &nu); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	usr, err := h.User.Create(ctx, nu)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUniqueEmail):
			return errs.NewTrusted(err, http.StatusConflict)
		case errors.Is(err, user.ErrCommunityFull):
			return errs.NewTrusted(err, http.StatusForbidden)
		case errors.Is(err, user.ErrInvalidEmail), errors.Is(err, user.ErrPasswordTooShort):
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return fmt.Errorf("create: email[%s]: %w", nu.Email, err)
	}

	addr, err := h.Wallet.GetOrCreate(ctx, usr.ID)
	if err != nil {
		return fmt.Errorf("issuing address: userID[%s]: %w", usr.ID, err)
	}

	sess, err := h.session(ctx, usr)
	if err != nil {
		return err
	}
	sess.Address = addr.Address

	return web.Respond(ctx, w, sess, http.StatusCreated)
}

// SignIn starts a session for a member.
func (h Handlers) SignIn(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var cred AppCredentials
	if err := web.Decode(r, &cred); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	usr, err := h.User.Authenticate(ctx, cred.Email, cred.Password)
	if err != nil {
		if errors.Is(err, user.ErrAuthenticationFailure) {
			return errs.NewTrusted(err, http.StatusUnauthorized)
		}
		return fmt.Errorf("authenticate: %w", err)
	}

	sess, err := h.session(ctx, usr)
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, sess, http.StatusOK)
}

// SignOut ends the session and clears the member's wallet state.
func (h Handlers) SignOut(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.NewAuthError("claims missing from context")
	}

	if err := h.Auth.Revoke(ctx, claims); err != nil {
		return err
	}

	h.Reset(ctx, claims.Subject)
	h.notify(claims.Subject, EventSignedOut)

	return web.Respond(ctx, w, nil, http.StatusNoContent)
}

// Session returns the member behind the current session.
func (h Handlers) Session(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.NewAuthError("claims missing from context")
	}

	usr, err := h.User.QueryByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return fmt.Errorf("querybyid: userID[%s]: %w", claims.Subject, err)
	}

	sess := struct {
		User      AppUser `json:"user"`
		ExpiresAt string  `json:"expires_at"`
	}{
		User:      toAppUser(usr),
		ExpiresAt: claims.ExpiresAt.Time.Format(time.RFC3339),
	}

	return web.Respond(ctx, w, sess, http.StatusOK)
}

// UpdatePassword changes the password of the signed in member.
func (h Handlers) UpdatePassword(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.NewAuthError("claims missing from context")
	}

	var up user.UpdatePassword
	if err := web.Decode(r, &up); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := h.User.UpdatePassword(ctx, claims.Subject, up); err != nil {
		switch {
		case errors.Is(err, user.ErrPasswordMismatch), errors.Is(err, user.ErrPasswordTooShort):
			return errs.NewTrusted(err, http.StatusBadRequest)
		case errors.Is(err, user.ErrNotFound):
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return fmt.Errorf("updatepassword: userID[%s]: %w", claims.Subject, err)
	}

	h.notify(claims.Subject, EventPasswordUpdated)

	status := struct {
		Status string `json:"status"`
	}{
		Status: "password updated",
	}

	return web.Respond(ctx, w, status, http.StatusOK)
}

// Events handles a web socket delivering auth changes of the member.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.NewAuthError("claims missing from context")
	}

	ch := h.Evts.Acquire(v.TraceID, Topic(claims.Subject))
	defer h.Evts.Release(v.TraceID)

	return web.Stream(ctx, w, r, ch)
}

// =============================================================================

func (h Handlers) session(ctx context.Context, usr user.User) (AppSession, error) {
	token, claims, err := h.Auth.Issue(ctx, usr.ID, usr.Email)
	if err != nil {
		return AppSession{}, fmt.Errorf("issue: userID[%s]: %w", usr.ID, err)
	}

	sess := AppSession{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time.Format(time.RFC3339),
		User:      toAppUser(usr),
	}

	return sess, nil
}

func (h Handlers) notify(userID string, event string) {
	data, err := json.Marshal(AppEvent{Event: event, UserID: userID})
	if err != nil {
		h.Log.Errorw("auth", "status", "marshal event", "ERROR", err)
		return
	}

	h.Evts.Send(Topic(userID), string(data))
}
