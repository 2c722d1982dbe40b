package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/zaplanje/coin/business/sys/validate"
)

// MinPasswordLength is the shortest password accepted.
const MinPasswordLength = 6

// User represents information about an individual user.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	DateCreated  time.Time
	DateUpdated  time.Time
}

// NewUser contains information needed to create a new user.
type NewUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Validate checks the data in the model is considered clean.
func (nu NewUser) Validate() error {
	if err := validate.Check(nu); err != nil {
		return err
	}
	return nil
}

// UpdatePassword contains the information needed to change a password.
type UpdatePassword struct {
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (up UpdatePassword) Validate() error {
	if err := validate.Check(up); err != nil {
		return err
	}
	return nil
}

// normalizeEmail trims and lower cases the address and checks it parses.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	return email, nil
}
