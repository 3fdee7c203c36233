package domain

import "errors"

var (
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrUnreadableFile     = errors.New("unreadable file")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)
