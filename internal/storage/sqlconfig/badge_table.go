package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

var badgeColumns = []string{"user_id", "badge_id", "display_name", "description", "earned_at"}

var _ IBadgeTable = (*BadgesTable)(nil)

// BadgesTable provides access to the user_badges table.
type BadgesTable struct {
	exec bob.Executor
}

func NewBadgesTable(exec bob.Executor) *BadgesTable {
	return &BadgesTable{exec: exec}
}

// ListByUser returns a user's awards, oldest first.
func (t *BadgesTable) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Badge, error) {
	q := psql.Select(
		sm.Columns(columnNames(badgeColumns)...),
		sm.From("user_badges"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("earned_at")).Asc(),
		sm.OrderBy(psql.Quote("badge_id")).Asc(),
	)
	return findAll[Badge](ctx, t.exec, q)
}

// Insert stores badge unless the user already holds that badge id, in which
// case the existing row is left untouched. It reports whether a row was added.
func (t *BadgesTable) Insert(ctx context.Context, badge *Badge) (bool, error) {
	q := psql.Insert(
		im.Into("user_badges", badgeColumns...),
		im.Values(psql.Arg(badge.UserID, badge.BadgeID, badge.DisplayName, badge.Description, badge.EarnedAt)),
		im.OnConflict("user_id", "badge_id").DoNothing(),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
