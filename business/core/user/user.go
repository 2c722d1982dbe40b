// Package user provides the core business API for community members.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zaplanje/coin/business/core/stats"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultMaxUsers is the size of the community.
const DefaultMaxUsers = 200

// Set of error variables for CRUD operations.
var (
	ErrNotFound              = errors.New("user not found")
	ErrUniqueEmail           = errors.New("email is not unique")
	ErrAuthenticationFailure = errors.New("authentication failed")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrPasswordTooShort      = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrCommunityFull         = errors.New("the community has reached its member limit")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	Create(ctx context.Context, usr User) error
	UpdatePassword(ctx context.Context, userID string, hash []byte, now time.Time) error
	QueryByID(ctx context.Context, userID string) (User, error)
	QueryByEmail(ctx context.Context, email string) (User, error)
	Count(ctx context.Context) (int, error)
}

// Counter tracks the number of registered users in the statistics record.
type Counter interface {
	IncrementUsers(ctx context.Context) (stats.Statistics, error)
}

// Config represents the settings of the user core.
type Config struct {
	Log      *zap.SugaredLogger
	Storer   Storer
	Counter  Counter
	MaxUsers int
	Cost     int
}

// Core manages the set of APIs for user access.
type Core struct {
	log      *zap.SugaredLogger
	storer   Storer
	counter  Counter
	maxUsers int
	cost     int
}

// NewCore constructs a core for user api access.
func NewCore(cfg Config) *Core {
	maxUsers := cfg.MaxUsers
	if maxUsers <= 0 {
		maxUsers = DefaultMaxUsers
	}

	cost := cfg.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &Core{
		log:      cfg.Log,
		storer:   cfg.Storer,
		counter:  cfg.Counter,
		maxUsers: maxUsers,
		cost:     cost,
	}
}

// Create adds a new member to the community.
func (c *Core) Create(ctx context.Context, nu NewUser) (User, error) {
	email, err := normalizeEmail(nu.Email)
	if err != nil {
		return User{}, err
	}

	if len(nu.Password) < MinPasswordLength {
		return User{}, ErrPasswordTooShort
	}

	count, err := c.storer.Count(ctx)
	if err != nil {
		return User{}, fmt.Errorf("count: %w", err)
	}

	if count >= c.maxUsers {
		return User{}, ErrCommunityFull
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), c.cost)
	if err != nil {
		return User{}, fmt.Errorf("generatefrompassword: %w", err)
	}

	now := time.Now().UTC()

	usr := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		DateCreated:  now,
		DateUpdated:  now,
	}

	if err := c.storer.Create(ctx, usr); err != nil {
		return User{}, fmt.Errorf("create: %w", err)
	}

	st, err := c.counter.IncrementUsers(ctx)
	if err != nil {
		c.log.Errorw("user", "status", "increment statistics", "userID", usr.ID, "ERROR", err)
	} else {
		c.log.Infow("user", "status", "member joined", "userID", usr.ID, "total", st.TotalUsers)
	}

	return usr, nil
}

// Authenticate finds a user by their email and verifies their password. On
// success it returns the user.
func (c *Core) Authenticate(ctx context.Context, email string, password string) (User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return User{}, ErrAuthenticationFailure
	}

	usr, err := c.storer.QueryByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrAuthenticationFailure
		}
		return User{}, fmt.Errorf("query: email[%s]: %w", email, err)
	}

	if err := bcrypt.CompareHashAndPassword(usr.PasswordHash, []byte(password)); err != nil {
		return User{}, ErrAuthenticationFailure
	}

	return usr, nil
}

// UpdatePassword replaces the password of the user.
func (c *Core) UpdatePassword(ctx context.Context, userID string, up UpdatePassword) error {
	if up.Password != up.PasswordConfirm {
		return ErrPasswordMismatch
	}

	if len(up.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	if _, err := c.storer.QueryByID(ctx, userID); err != nil {
		return fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(up.Password), c.cost)
	if err != nil {
		return fmt.Errorf("generatefrompassword: %w", err)
	}

	if err := c.storer.UpdatePassword(ctx, userID, hash, time.Now().UTC()); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	return nil
}

// QueryByID gets the specified user from the database.
func (c *Core) QueryByID(ctx context.Context, userID string) (User, error) {
	usr, err := c.storer.QueryByID(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}
	return usr, nil
}

// QueryByEmail gets the specified user from the database.
func (c *Core) QueryByEmail(ctx context.Context, email string) (User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return User{}, err
	}

	usr, err := c.storer.QueryByEmail(ctx, email)
	if err != nil {
		return User{}, fmt.Errorf("query: email[%s]: %w", email, err)
	}
	return usr, nil
}

// Count returns the number of registered users.
func (c *Core) Count(ctx context.Context) (int, error) {
	return c.storer.Count(ctx)
}
