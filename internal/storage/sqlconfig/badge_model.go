package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Badge represents a user_badges record, keyed by (UserID, BadgeID).
type Badge struct {
	UserID      uuid.UUID `db:"user_id"`
	BadgeID     string    `db:"badge_id"`
	DisplayName string    `db:"display_name"`
	Description string    `db:"description"`
	EarnedAt    time.Time `db:"earned_at"`
}

// IBadgeTable defines the interface for awarded badge storage. Rows are
// only ever added.
//
//go:generate mockery --name IBadgeTable --output mock_IBadgeTable.go
type IBadgeTable interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Badge, error)
	Insert(ctx context.Context, badge *Badge) (bool, error)
}
