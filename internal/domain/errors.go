package domain

import "errors"

var (
	// ErrUserNotFound is returned when a user id or email does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrQuizNotFound is returned when a quiz id does not resolve.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrShareCodeNotFound is returned when a share code is unknown or expired.
	ErrShareCodeNotFound = errors.New("share code not found")
	// ErrEmailTaken hides which field collided on registration.
	ErrEmailTaken = errors.New("name or email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned for missing, malformed or expired tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidInput is wrapped by validation failures.
	ErrInvalidInput = errors.New("invalid input")
)
