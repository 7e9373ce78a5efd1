package auth

import "errors"

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password"
	// so the two are indistinguishable at every boundary above the store.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidDigest marks a stored password hash that bcrypt cannot parse.
	ErrInvalidDigest = errors.New("invalid password digest")

	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)
