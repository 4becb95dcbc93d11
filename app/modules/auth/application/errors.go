package authservice

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned when the session token is invalid.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrExpiredToken is returned when the session has expired.
	ErrExpiredToken = errors.New("session has expired")

	// ErrMissingToken is returned when no token is provided.
	ErrMissingToken = errors.New("missing session token")

	// ErrWeakPassword is returned when a new password is too short.
	ErrWeakPassword = errors.New("password must be at least 8 characters")

	// ErrDuplicateEmail is returned when signing up an email that already has access.
	ErrDuplicateEmail = errors.New("an admin with this email already exists")

	// ErrAdminNotFound is returned when deleting an unknown admin.
	ErrAdminNotFound = errors.New("admin not found")

	// ErrCannotDeleteSelf is returned when an admin tries to delete their own account.
	ErrCannotDeleteSelf = errors.New("cannot delete the account you are signed in with")
)
