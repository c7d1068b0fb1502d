package badges

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
)

// AwardStore keeps the badges a user has unlocked.
//
// SaveAward must be idempotent per (userID, badge.BadgeID): a second write of
// the same id is ignored and reports false, it never creates a second record.
// Implementations never delete awards.
type AwardStore interface {
	AwardedBadgeIDs(ctx context.Context, userID uuid.UUID) ([]BadgeID, error)
	SaveAward(ctx context.Context, userID uuid.UUID, badge EarnedBadge) (bool, error)
}

// Awarder wraps an Evaluator with additive persistence: once a badge is
// saved it stays, whatever later passes conclude.
type Awarder struct {
	evaluator *Evaluator
	store     AwardStore
}

// NewAwarder creates an Awarder.
func NewAwarder(evaluator *Evaluator, store AwardStore) *Awarder {
	return &Awarder{evaluator: evaluator, store: store}
}

// Award evaluates the catalog for userID and persists every badge that holds
// and is not stored yet. It returns only the newly awarded badges.
//
// Badges already stored are not evaluated again. A badge another pass stored
// between the read and the write is not reported. If a write fails the badges
// saved before it are returned along with the error; rerunning is safe.
func (a *Awarder) Award(ctx context.Context, userID uuid.UUID, in Input, now time.Time) ([]EarnedBadge, error) {
	activity, ok := newActivity(in, now)
	if !ok {
		return []EarnedBadge{}, nil
	}

	ids, err := a.store.AwardedBadgeIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load awarded badges: %w", err)
	}
	awarded := make(map[BadgeID]struct{}, len(ids))
	for _, id := range ids {
		awarded[id] = struct{}{}
	}

	candidates := a.evaluator.evaluate(activity, func(id BadgeID) bool {
		_, done := awarded[id]
		return done
	})

	newlyAwarded := make([]EarnedBadge, 0, len(candidates))
	for _, badge := range candidates {
		inserted, err := a.store.SaveAward(ctx, userID, badge)
		if err != nil {
			return newlyAwarded, fmt.Errorf("save badge %s: %w", badge.BadgeID, err)
		}
		if inserted {
			newlyAwarded = append(newlyAwarded, badge)
		}
	}
	return newlyAwarded, nil
}
