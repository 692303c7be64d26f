package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation means a required login field was missing.
	ErrValidation = errors.New("username and password are required")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// DependencyError wraps a failure of the credential store or token signing.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("login %s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }
