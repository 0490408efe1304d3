package domain

import "errors"

// Validation failures, reported verbatim to the client.
var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidRole        = errors.New("invalid role selected")
	ErrMissingShopName    = errors.New("shop name is required for sellers")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 8 characters long")
)

// Uniqueness conflicts. The field-specific sentinels wrap ErrDuplicateAccount
// so callers can match either the precise field or the whole class.
var (
	ErrDuplicateAccount  = errors.New("account already exists")
	ErrDuplicateEmail    = wrapDuplicate("email already exists")
	ErrDuplicateUsername = wrapDuplicate("username already exists")
	ErrDuplicateShopName = wrapDuplicate("shop name already exists")
)

// Authentication and session failures. ErrInvalidCredentials is deliberately
// generic: unknown email and wrong password collapse to the same error so the
// API cannot be used to enumerate accounts.
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionPersistence = errors.New("error creating session")
	ErrLogoutFailed       = errors.New("could not log out, please try again")
)

// Lookup failures.
var (
	ErrNotFound        = errors.New("no accounts found")
	ErrAccountNotFound = errors.New("account not found")
)

type duplicateError struct{ msg string }

func (e *duplicateError) Error() string { return e.msg }

func (e *duplicateError) Unwrap() error { return ErrDuplicateAccount }

func wrapDuplicate(msg string) error { return &duplicateError{msg: msg} }
