package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/claritybank/badge-server/internal/badges"
)

// DefaultInitialBalance is credited to accounts opened without an explicit balance.
var DefaultInitialBalance = decimal.NewFromInt(1000)

// Account represents a bank account in the service layer.
type Account struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	AccountNumber string
	BankID        string
	BankName      string
	Balance       decimal.Decimal
	CreatedAt     time.Time
}

// Movement is a deposit or withdrawal request.
type Movement struct {
	Amount      decimal.Decimal
	Category    badges.Category
	Description string
}

// MovementResult is the outcome of a committed deposit or withdrawal.
type MovementResult struct {
	TransactionID uuid.UUID
	Balance       decimal.Decimal
}
