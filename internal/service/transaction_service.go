package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/claritybank/badge-server/internal/storage"
	"github.com/claritybank/badge-server/internal/storage/sqlconfig"
)

const defaultLimit = 20

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage *storage.Storage
	now     func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, now func() time.Time) *TransactionService {
	return &TransactionService{storage: store, now: now}
}

// ListTransactions returns a page of an account's transactions, newest first.
// The first page fixes maxCreationTime so records created while paging do not
// shift later pages.
func (s *TransactionService) ListTransactions(ctx context.Context, accountID uuid.UUID, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	maxCreationTime := s.now()
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = cursor.Limit
		}
		offset = cursor.Position
		maxCreationTime = cursor.MaxCreationTime
	}

	account, err := s.storage.Accounts.FindByID(ctx, accountID, false)
	if err != nil {
		return nil, nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, nil, ErrAccountNotFound
	}

	filter := &sqlconfig.TransactionFilter{
		AccountID:       &accountID,
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: &maxCreationTime,
	}

	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: maxCreationTime,
		}
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = transactionFromStorage(row)
	}

	return convertedTransactions, nextCursor, nil
}

// recentTransactions returns up to limit of the account's latest transactions.
func recentTransactions(ctx context.Context, store *storage.Storage, accountID uuid.UUID, limit int) ([]Transaction, error) {
	rows, err := store.Transactions.List(ctx, &sqlconfig.TransactionFilter{
		AccountID: &accountID,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	txs := make([]Transaction, len(rows))
	for i, row := range rows {
		txs[i] = transactionFromStorage(row)
	}
	return txs, nil
}
