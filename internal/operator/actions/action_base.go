package actions

import (
	"context"
	"errors"

	"github.com/claritybank/badge-server/internal/storage"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidMovement   = errors.New("invalid movement")
)

// IAction is one unit of work run by an operator inside a single database
// transaction. Returning an error rolls the transaction back.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
