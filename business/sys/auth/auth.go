// Package auth provides authentication support for signed in users. A
// session is a signed JWT whose id is registered with a session store so
// that signing out revokes it before it expires.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrForbidden is returned when a token is well formed but not usable.
var ErrForbidden = errors.New("attempted action is not allowed")

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Sessions defines the behavior required to keep track of live sessions.
type Sessions interface {
	Add(ctx context.Context, sessionID string, userID string, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string) error
}

// Config represents information required to initialize auth.
type Config struct {
	Log      *zap.SugaredLogger
	Secret   string
	Issuer   string
	TTL      time.Duration
	Sessions Sessions
}

// Auth is used to issue and validate session tokens.
type Auth struct {
	log      *zap.SugaredLogger
	secret   []byte
	issuer   string
	ttl      time.Duration
	sessions Sessions
	method   jwt.SigningMethod
	parser   *jwt.Parser
}

// New creates an Auth to support issuing and validating session tokens.
func New(cfg Config) (*Auth, error) {
	if len(cfg.Secret) < 16 {
		return nil, errors.New("auth secret must be at least 16 characters")
	}

	if cfg.Sessions == nil {
		return nil, errors.New("auth requires a session store")
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	a := Auth{
		log:      cfg.Log,
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		ttl:      ttl,
		sessions: cfg.Sessions,
		method:   jwt.SigningMethodHS256,
		parser:   jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})),
	}

	return &a, nil
}

// Issue starts a new session for the user and returns the signed token.
func (a *Auth) Issue(ctx context.Context, userID string, email string) (string, Claims, error) {
	now := time.Now().UTC()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
		Email: email,
	}

	token, err := jwt.NewWithClaims(a.method, claims).SignedString(a.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("signing token: %w", err)
	}

	if err := a.sessions.Add(ctx, claims.ID, userID, a.ttl); err != nil {
		return "", Claims{}, fmt.Errorf("registering session: %w", err)
	}

	return token, claims, nil
}

// Authenticate processes the token to validate the sender's session.
func (a *Auth) Authenticate(ctx context.Context, token string) (Claims, error) {
	if token == "" {
		return Claims{}, NewAuthError("expected authorization header format: Bearer <token>")
	}

	var claims Claims
	if _, err := a.parser.ParseWithClaims(token, &claims, a.key); err != nil {
		return Claims{}, NewAuthError("invalid token: %s", err)
	}

	if claims.Subject == "" || claims.ID == "" {
		return Claims{}, NewAuthError("token missing subject or id")
	}

	live, err := a.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return Claims{}, fmt.Errorf("checking session: %w", err)
	}

	if !live {
		return Claims{}, NewAuthError("session has been signed out")
	}

	return claims, nil
}

// Revoke ends the session represented by the claims.
func (a *Auth) Revoke(ctx context.Context, claims Claims) error {
	if err := a.sessions.Revoke(ctx, claims.ID); err != nil {
		return fmt.Errorf("revoking session[%s]: %w", claims.ID, err)
	}

	if a.log != nil {
		a.log.Infow("auth", "status", "session revoked", "userID", claims.Subject, "sessionID", claims.ID)
	}

	return nil
}

func (a *Auth) key(t *jwt.Token) (any, error) {
	return a.secret, nil
}
