package token

import "errors"

var (
	// ErrUnauthenticated means no access token was presented at all.
	ErrUnauthenticated = errors.New("no access token provided")

	// ErrMissingToken means no refresh token was presented.
	ErrMissingToken = errors.New("no refresh token provided")

	// ErrInvalidToken covers signature, expiry and store-mismatch failures
	// on a refresh token, and malformed or tampered access tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrAccessTokenExpired means the access token verified under the
	// access secret but its expiry has passed. Callers recover from it by
	// renewing with a refresh token.
	ErrAccessTokenExpired = errors.New("access token expired")
)
