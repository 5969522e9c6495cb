package domain

import "errors"

var (
	// ErrDuplicateUser is returned when registering an id that already
	// has an account.
	ErrDuplicateUser = errors.New("user id is already taken")

	// ErrInvalidCredentials covers both an unknown user and a wrong
	// password, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
