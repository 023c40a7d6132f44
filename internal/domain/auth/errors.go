package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credential email/password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)
