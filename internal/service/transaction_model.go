package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/claritybank/badge-server/internal/badges"
	"github.com/claritybank/badge-server/internal/storage/sqlconfig"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Direction   badges.Direction
	Amount      decimal.Decimal
	Category    badges.Category
	Description string
	OccurredAt  time.Time
	CreatedAt   time.Time
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

func transactionFromStorage(row *sqlconfig.Transaction) Transaction {
	return Transaction{
		ID:          row.ID,
		AccountID:   row.AccountID,
		Direction:   badges.Direction(row.Direction),
		Amount:      row.Amount,
		Category:    badges.Category(row.Category),
		Description: row.Description,
		OccurredAt:  row.OccurredAt,
		CreatedAt:   row.CreatedAt,
	}
}

func (t Transaction) badgeTransaction() badges.Transaction {
	return badges.Transaction{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Direction:   t.Direction,
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		OccurredAt:  t.OccurredAt,
	}
}
