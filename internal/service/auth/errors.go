package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrMissingCredentials indicates that login or signup was attempted without
	// an email or password
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrNotAuthenticated indicates that no user is signed in, or that the token
	// belongs to a session that has since ended
	ErrNotAuthenticated = errors.New("not authenticated")
)
