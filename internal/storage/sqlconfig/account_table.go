package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
)

var accountColumns = []string{
	"id", "user_id", "account_number", "bank_id", "bank_name", "balance", "created_at", "updated_at",
}

// AccountsTable provides access to the bank_accounts table.
type AccountsTable struct {
	exec bob.Executor
}

// Ensure AccountsTable implements IAccountTable at compile time.
var _ IAccountTable = (*AccountsTable)(nil)

// NewAccountsTable creates an AccountsTable on a database handle or an open transaction.
func NewAccountsTable(exec bob.Executor) *AccountsTable {
	return &AccountsTable{exec: exec}
}

// FindByID retrieves an account by primary key, nil if absent. With forUpdate
// the row stays locked until the surrounding transaction ends.
func (t *AccountsTable) FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columnNames(accountColumns)...),
		sm.From("bank_accounts"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}
	return findOne[Account](ctx, t.exec, psql.Select(queryMods...))
}

// Insert creates a new account and returns its generated ID.
func (t *AccountsTable) Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	q := psql.Insert(
		im.Into("bank_accounts", "id", "user_id", "account_number", "bank_id", "bank_name", "balance"),
		im.Values(psql.Arg(id, create.UserID, create.AccountNumber, create.BankID, create.BankName, create.Balance)),
	)
	if _, err := bob.Exec(ctx, t.exec, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// UpdateBalance updates the balance for a given account.
func (t *AccountsTable) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table("bank_accounts"),
		um.SetCol("balance").ToArg(balance),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}
