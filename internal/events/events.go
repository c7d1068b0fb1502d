package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/claritybank/badge-server/internal/badges"
)

const BadgeAwardedType = "badge.awarded"

// BadgeAwarded is published once per newly persisted award.
type BadgeAwarded struct {
	EventID     string    `json:"eventId"`
	Type        string    `json:"type"`
	UserID      string    `json:"userId"`
	BadgeID     string    `json:"badgeId"`
	DisplayName string    `json:"displayName"`
	EarnedAt    time.Time `json:"earnedAt"`
}

func NewBadgeAwarded(userID uuid.UUID, badge badges.EarnedBadge) (BadgeAwarded, error) {
	eventID, err := uuid.NewV4()
	if err != nil {
		return BadgeAwarded{}, fmt.Errorf("generate event id: %w", err)
	}
	return BadgeAwarded{
		EventID:     eventID.String(),
		Type:        BadgeAwardedType,
		UserID:      userID.String(),
		BadgeID:     string(badge.BadgeID),
		DisplayName: badge.DisplayName,
		EarnedAt:    badge.EarnedAt.UTC(),
	}, nil
}

func (e BadgeAwarded) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers badge events to interested services. Implementations
// must be safe for concurrent use.
type Publisher interface {
	PublishBadgeAwarded(ctx context.Context, event BadgeAwarded) error
	Close() error
}
