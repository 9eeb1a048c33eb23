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

	// ErrWrongTokenType indicates an access token was used as a refresh token or vice versa
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrInvalidRefreshToken indicates the refresh token is malformed or badly signed
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredRefreshToken indicates the refresh token has expired
	ErrExpiredRefreshToken = errors.New("refresh token has expired")

	// ErrInvalidAuthScheme indicates the Authorization header does not use the configured scheme
	ErrInvalidAuthScheme = errors.New("invalid authorization scheme")

	// ErrWeakSigningKey indicates the signing key is too short for HMAC-SHA256
	ErrWeakSigningKey = errors.New("signing key must be at least 32 characters")

	// ErrInvalidTokenPolicy indicates non-positive token lifetimes
	ErrInvalidTokenPolicy = errors.New("token lifetimes must be positive")
)
