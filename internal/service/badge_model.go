package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/claritybank/badge-server/internal/badges"
)

// BadgeRequest names the account a badge pass runs for, plus the session
// flags that cannot be derived from stored data.
type BadgeRequest struct {
	AccountID uuid.UUID
	Flags     *badges.AuxiliaryFlags
}

// AwardedBadge is a persisted award.
type AwardedBadge struct {
	BadgeID     badges.BadgeID
	DisplayName string
	Description string
	EarnedAt    time.Time
	// Legacy is true for ids kept only so old awards stay displayable.
	Legacy bool
}
