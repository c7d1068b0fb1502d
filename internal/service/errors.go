package service

import (
	"errors"

	"github.com/claritybank/badge-server/internal/operator/actions"
)

var (
	ErrAccountNotFound   = actions.ErrAccountNotFound
	ErrInsufficientFunds = actions.ErrInsufficientFunds
	ErrInvalidAmount     = actions.ErrInvalidAmount
	ErrInvalidMovement   = actions.ErrInvalidMovement
	ErrUserNotFound      = errors.New("user not found")
)
