package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/claritybank/badge-server/internal/handlers/v1/httperr"
	"github.com/claritybank/badge-server/internal/logging"
)

// SummaryResponse is the response body for an activity summary.
type SummaryResponse struct {
	Summary string `json:"summary" doc:"A short, friendly description of recent activity"`
}

type SummaryOutput struct {
	Body SummaryResponse
}

type summarizer interface {
	Summarize(ctx context.Context, accountID uuid.UUID) (string, error)
}

// SummaryHandler handles GET /v1/account/{accountID}/summary.
type SummaryHandler struct {
	SummaryService summarizer
}

func NewSummaryHandler(svc summarizer) *SummaryHandler {
	return &SummaryHandler{SummaryService: svc}
}

func (h *SummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account-summary",
		Method:      http.MethodGet,
		Path:        "/v1/account/{accountID}/summary",
		Summary:     "Summarize recent activity",
		Description: "Asks the language model for a two or three sentence summary of the account's recent transactions.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *SummaryHandler) handle(ctx context.Context, input *AccountPath) (*SummaryOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := input.id()
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("summarizeMs")
	}
	text, err := h.SummaryService.Summarize(ctx, id)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromService(err, "failed to summarize account")
	}

	return &SummaryOutput{Body: SummaryResponse{Summary: text}}, nil
}
