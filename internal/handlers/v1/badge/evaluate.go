package badge

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/claritybank/badge-server/internal/badges"
	"github.com/claritybank/badge-server/internal/handlers/v1/httperr"
	"github.com/claritybank/badge-server/internal/logging"
	"github.com/claritybank/badge-server/internal/service"
)

// BadgeInput is the Huma input shared by evaluation and award passes.
type BadgeInput struct {
	Body BadgeRequestBody
}

type BadgeOutput struct {
	Body BadgeListBody
}

type badgeEvaluator interface {
	Evaluate(ctx context.Context, req service.BadgeRequest) ([]badges.EarnedBadge, error)
	Award(ctx context.Context, req service.BadgeRequest) ([]badges.EarnedBadge, error)
}

// BadgeHandler handles POST /v1/badge/evaluate and POST /v1/badge/award.
type BadgeHandler struct {
	BadgeService badgeEvaluator
}

func NewBadgeHandler(svc badgeEvaluator) *BadgeHandler {
	return &BadgeHandler{BadgeService: svc}
}

func (h *BadgeHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "evaluate-badges",
		Method:      http.MethodPost,
		Path:        "/v1/badge/evaluate",
		Summary:     "Evaluate badges",
		Description: "Returns every badge the account qualifies for right now. Nothing is stored.",
		Tags:        []string{"Badges"},
	}, h.evaluate)

	huma.Register(api, huma.Operation{
		OperationID: "award-badges",
		Method:      http.MethodPost,
		Path:        "/v1/badge/award",
		Summary:     "Award badges",
		Description: "Stores every newly satisfied badge for the account's owner and returns only those. Stored badges are never removed.",
		Tags:        []string{"Badges"},
	}, h.award)
}

func parseBadgeInput(input *BadgeInput) (service.BadgeRequest, error) {
	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return service.BadgeRequest{}, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}
	return service.BadgeRequest{
		AccountID: accountID,
		Flags:     &badges.AuxiliaryFlags{HasDownloadedReceipt: input.Body.HasDownloadedReceipt},
	}, nil
}

func (h *BadgeHandler) evaluate(ctx context.Context, input *BadgeInput) (*BadgeOutput, error) {
	return h.handle(ctx, input, "evaluateBadgesMs", h.BadgeService.Evaluate)
}

func (h *BadgeHandler) award(ctx context.Context, input *BadgeInput) (*BadgeOutput, error) {
	return h.handle(ctx, input, "awardBadgesMs", h.BadgeService.Award)
}

func (h *BadgeHandler) handle(
	ctx context.Context,
	input *BadgeInput,
	timingName string,
	pass func(context.Context, service.BadgeRequest) ([]badges.EarnedBadge, error),
) (*BadgeOutput, error) {
	logData := logging.GetLogData(ctx)

	req, err := parseBadgeInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming(timingName)
	}
	earned, err := pass(ctx, req)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromService(err, "badge pass failed")
	}

	if logData != nil {
		logData.AddData("accountID", req.AccountID.String())
		logData.AddData("badgeCount", len(earned))
	}

	return &BadgeOutput{Body: BadgeListBody{Badges: toEarnedBadges(earned)}}, nil
}
