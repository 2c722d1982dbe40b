package authgrp

import (
	"time"

	"github.com/zaplanje/coin/business/core/user"
	"github.com/zaplanje/coin/business/sys/validate"
)

// Set of auth state change events sent to a user's subscribers.
const (
	EventSignedOut       = "SIGNED_OUT"
	EventPasswordUpdated = "PASSWORD_UPDATED"
)

// AppUser is the user returned to clients. The password hash never leaves
// the service.
type AppUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DateCreated string `json:"date_created"`
}

func toAppUser(usr user.User) AppUser {
	return AppUser{
		ID:          usr.ID,
		Email:       usr.Email,
		DateCreated: usr.DateCreated.Format(time.RFC3339),
	}
}

// AppCredentials is what a member signs in with.
type AppCredentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (app AppCredentials) Validate() error {
	if err := validate.Check(app); err != nil {
		return err
	}
	return nil
}

// AppSession is returned on sign up and sign in.
type AppSession struct {
	Token     string  `json:"token"`
	ExpiresAt string  `json:"expires_at"`
	User      AppUser `json:"user"`
	Address   string  `json:"address,omitempty"`
}

// AppEvent is sent over the auth events websocket.
type AppEvent struct {
	Event  string `json:"event"`
	UserID string `json:"user_id"`
}
