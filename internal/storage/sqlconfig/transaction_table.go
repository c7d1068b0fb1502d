package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

var transactionColumns = []string{
	"id", "account_id", "user_id", "direction", "amount", "category", "description", "occurred_at", "created_at",
}

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// Insert creates a new transaction and returns its generated ID.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	columns := []string{"id", "account_id", "user_id", "direction", "amount", "category", "description"}
	values := []any{id, create.AccountID, create.UserID, create.Direction, create.Amount, create.Category, create.Description}
	if !create.OccurredAt.IsZero() {
		columns = append(columns, "occurred_at")
		values = append(values, create.OccurredAt)
	}

	q := psql.Insert(
		im.Into("transactions", columns...),
		im.Values(psql.Arg(values...)),
	)
	if _, err := bob.Exec(ctx, t.exec, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// List returns transactions matching the filter, newest first. Nil filter returns all.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columnNames(transactionColumns)...),
		sm.From("transactions"),
	}
	if filter != nil {
		if filter.AccountID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("account_id").EQ(psql.Arg(*filter.AccountID))))
		}
		if filter.MaxCreationTime != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("occurred_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)
	return findAll[Transaction](ctx, t.exec, psql.Select(queryMods...))
}
