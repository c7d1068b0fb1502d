package user

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/claritybank/badge-server/internal/handlers/v1/httperr"
	"github.com/claritybank/badge-server/internal/logging"
	"github.com/claritybank/badge-server/internal/service"
)

// ListBadgesInput is the Huma input for listing a user's awards.
type ListBadgesInput struct {
	UserID string `path:"userID" format:"uuid" doc:"User UUID"`
}

// ListBadgesResponseBody is the response body for listing a user's awards.
type ListBadgesResponseBody struct {
	Badges []Badge `json:"badges" doc:"Awards, oldest first"`
}

type ListBadgesOutput struct {
	Body ListBadgesResponseBody
}

type awardLister interface {
	ListAwards(ctx context.Context, userID uuid.UUID) ([]service.AwardedBadge, error)
}

// ListBadgesHandler handles GET /v1/user/{userID}/badges.
type ListBadgesHandler struct {
	BadgeService awardLister
}

func NewListBadgesHandler(svc awardLister) *ListBadgesHandler {
	return &ListBadgesHandler{BadgeService: svc}
}

func (h *ListBadgesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-user-badges",
		Method:      http.MethodGet,
		Path:        "/v1/user/{userID}/badges",
		Summary:     "List a user's badges",
		Description: "Returns every badge persisted for the user. Awards are never revoked.",
		Tags:        []string{"Users", "Badges"},
	}, h.handle)
}

func (h *ListBadgesHandler) handle(ctx context.Context, input *ListBadgesInput) (*ListBadgesOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := uuid.FromString(input.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid userID", err)
	}

	awards, err := h.BadgeService.ListAwards(ctx, id)
	if err != nil {
		return nil, httperr.FromService(err, "failed to list badges")
	}

	if logData != nil {
		logData.AddData("badgeCount", len(awards))
	}

	resp := ListBadgesResponseBody{Badges: make([]Badge, len(awards))}
	for i, a := range awards {
		resp.Badges[i] = Badge{
			BadgeID:     string(a.BadgeID),
			DisplayName: a.DisplayName,
			Description: a.Description,
			EarnedAt:    a.EarnedAt.Format(time.RFC3339),
			Legacy:      a.Legacy,
		}
	}
	return &ListBadgesOutput{Body: resp}, nil
}
