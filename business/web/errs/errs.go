// Package errs carries the error types the coin API translates into
// client responses.
package errs

import "errors"

// Response is the body sent to clients when a request fails.
type Response struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Trusted marks an error whose message is safe to show a member, together
// with the status code it maps to. Anything not Trusted is reported as a
// 500 without its message.
type Trusted struct {
	Err    error
	Status int
}

// NewTrusted wraps err for a response with the given status. Handlers use
// it for the expected failures of a core, like a sold out product.
func NewTrusted(err error, status int) error {
	return &Trusted{err, status}
}

// Error implements the error interface.
func (te *Trusted) Error() string {
	return te.Err.Error()
}

// Unwrap gives errors.Is access to the core error.
func (te *Trusted) Unwrap() error {
	return te.Err
}

// IsTrusted reports whether err carries a Trusted error.
func IsTrusted(err error) bool {
	var te *Trusted
	return errors.As(err, &te)
}

// GetTrusted returns the Trusted error inside err, or nil.
func GetTrusted(err error) *Trusted {
	var te *Trusted
	if !errors.As(err, &te) {
		return nil
	}
	return te
}
