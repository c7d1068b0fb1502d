package badge

import (
	"time"

	"github.com/claritybank/badge-server/internal/badges"
)

// Definition is the API response model for a catalog entry.
type Definition struct {
	ID          string `json:"id" doc:"Stable badge id"`
	DisplayName string `json:"displayName" doc:"Badge name"`
	Description string `json:"description" doc:"What the badge is awarded for"`
	Legacy      bool   `json:"legacy" doc:"True for ids kept only for older awards"`
}

// EarnedBadge is the API response model for a badge that holds right now.
type EarnedBadge struct {
	BadgeID     string `json:"badgeID" doc:"Stable badge id"`
	DisplayName string `json:"displayName" doc:"Badge name"`
	Description string `json:"description" doc:"What the badge is awarded for"`
	EarnedAt    string `json:"earnedAt" doc:"RFC3339 evaluation time"`
}

// BadgeRequestBody selects the account a badge pass runs for.
type BadgeRequestBody struct {
	AccountID            string `json:"accountID" format:"uuid" doc:"Account UUID"`
	HasDownloadedReceipt bool   `json:"hasDownloadedReceipt,omitempty" doc:"Whether the user has exported a transaction receipt"`
}

// BadgeListBody is the response body of an evaluation or award pass.
type BadgeListBody struct {
	Badges []EarnedBadge `json:"badges" doc:"Badges in catalog order"`
}

func toEarnedBadges(earned []badges.EarnedBadge) []EarnedBadge {
	out := make([]EarnedBadge, len(earned))
	for i, b := range earned {
		out[i] = EarnedBadge{
			BadgeID:     string(b.BadgeID),
			DisplayName: b.DisplayName,
			Description: b.Description,
			EarnedAt:    b.EarnedAt.Format(time.RFC3339),
		}
	}
	return out
}
