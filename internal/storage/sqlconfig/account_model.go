package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Account represents a bank_accounts record.
type Account struct {
	ID            uuid.UUID       `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	AccountNumber string          `db:"account_number"`
	BankID        string          `db:"bank_id"`
	BankName      string          `db:"bank_name"`
	Balance       decimal.Decimal `db:"balance"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	UserID        uuid.UUID
	AccountNumber string
	BankID        string
	BankName      string
	Balance       decimal.Decimal
}

// IAccountTable defines the interface for account storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
//
//go:generate mockery --name IAccountTable --output mock_IAccountTable.go
type IAccountTable interface {
	FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*Account, error)
	Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}
