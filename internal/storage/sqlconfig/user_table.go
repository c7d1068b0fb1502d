package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

var userColumns = []string{"id", "first_name", "last_name", "email", "created_at"}

// UsersTable provides access to the users table.
type UsersTable struct {
	exec bob.Executor
}

var _ IUserTable = (*UsersTable)(nil)

func NewUsersTable(exec bob.Executor) *UsersTable {
	return &UsersTable{exec: exec}
}

// FindByID returns nil when the user does not exist.
func (t *UsersTable) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	q := psql.Select(
		sm.Columns(columnNames(userColumns)...),
		sm.From("users"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	return findOne[User](ctx, t.exec, q)
}

// Insert creates a new user and returns its generated ID.
func (t *UsersTable) Insert(ctx context.Context, create *UserCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	q := psql.Insert(
		im.Into("users", "id", "first_name", "last_name", "email"),
		im.Values(psql.Arg(id, create.FirstName, create.LastName, create.Email)),
	)
	if _, err := bob.Exec(ctx, t.exec, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
