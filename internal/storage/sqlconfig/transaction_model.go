package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction represents a transactions record. Amount is never negative;
// Direction ("deposit" or "withdrawal") carries the sign.
type Transaction struct {
	ID          uuid.UUID       `db:"id"`
	AccountID   uuid.UUID       `db:"account_id"`
	UserID      uuid.UUID       `db:"user_id"`
	Direction   string          `db:"direction"`
	Amount      decimal.Decimal `db:"amount"`
	Category    string          `db:"category"`
	Description string          `db:"description"`
	OccurredAt  time.Time       `db:"occurred_at"`
	CreatedAt   time.Time       `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	AccountID   uuid.UUID
	UserID      uuid.UUID
	Direction   string
	Amount      decimal.Decimal
	Category    string
	Description string
	OccurredAt  time.Time // defaults to now if zero
}

// TransactionFilter specifies filters for listing transactions.
// A positive Limit fetches one extra row so callers can detect a next page.
type TransactionFilter struct {
	AccountID       *uuid.UUID
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
//
//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
}
