package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrEmployeeLinked     = errors.New("employee already linked to another user")
	ErrAccountLocked      = errors.New("account locked")
	ErrRateLimited        = errors.New("rate limited")

	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrTokenReuseDetected means the refresh token verified cryptographically
	// but matched no live session row: most plausibly a replay of an
	// already-rotated token. Callers must clear the session's cookies.
	ErrTokenReuseDetected = errors.New("refresh token reuse detected")
	ErrUserNotFound       = errors.New("user not found")

	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)
