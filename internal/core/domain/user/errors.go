package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrUserDoesNotExist    = errors.New("user does not exist")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSessionDoesNotExist = errors.New("session does not exist")
)

var (
	ErrPasswordResetTokenDoesNotExist = errors.New("password reset token does not exist")
	ErrInvalidPasswordResetToken      = errors.New("invalid or expired reset token")
	ErrPasswordResetTokenExpired      = errors.New("reset token has expired")
)
