package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/claritybank/badge-server/internal/storage/sqlconfig"
)

// Txn is the part of a database transaction a Writer needs to finish it.
type Txn interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer exposes the tables that operator actions mutate, all bound to one
// transaction.
type Writer struct {
	tx           Txn
	Accounts     sqlconfig.IAccountTable
	Transactions sqlconfig.ITransactionTable
}

func NewWriter(tx bob.Tx) *Writer {
	return NewWriterWithTables(tx, sqlconfig.NewAccountsTable(tx), sqlconfig.NewTransactionsTable(tx))
}

// NewWriterWithTables assembles a Writer from already bound tables.
func NewWriterWithTables(tx Txn, accounts sqlconfig.IAccountTable, transactions sqlconfig.ITransactionTable) *Writer {
	return &Writer{
		tx:           tx,
		Accounts:     accounts,
		Transactions: transactions,
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
