package service

import "errors"

var (
	// ErrEmailTaken is returned by Register when the email is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned by Login for unknown users and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated is returned by the identity resolver for every failure.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidToken covers bad signatures, malformed tokens and missing claims.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned for a correctly signed token past its expiry.
	ErrExpiredToken = errors.New("token expired")
	// ErrValidation wraps malformed input.
	ErrValidation = errors.New("validation error")
)
