package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/claritybank/badge-server/internal/badges"
	"github.com/claritybank/badge-server/internal/storage/sqlconfig"
)

// badgeAwardStore adapts the user_badges table to badges.AwardStore.
type badgeAwardStore struct {
	table sqlconfig.IBadgeTable
}

var _ badges.AwardStore = badgeAwardStore{}

func (s badgeAwardStore) AwardedBadgeIDs(ctx context.Context, userID uuid.UUID) ([]badges.BadgeID, error) {
	rows, err := s.table.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]badges.BadgeID, len(rows))
	for i, row := range rows {
		ids[i] = badges.BadgeID(row.BadgeID)
	}
	return ids, nil
}

// SaveAward relies on the (user_id, badge_id) key: a concurrent pass that
// already wrote the id turns this write into a no-op and reports false.
func (s badgeAwardStore) SaveAward(ctx context.Context, userID uuid.UUID, badge badges.EarnedBadge) (bool, error) {
	return s.table.Insert(ctx, &sqlconfig.Badge{
		UserID:      userID,
		BadgeID:     string(badge.BadgeID),
		DisplayName: badge.DisplayName,
		Description: badge.Description,
		EarnedAt:    badge.EarnedAt,
	})
}
