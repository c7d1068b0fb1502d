package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/claritybank/badge-server/internal/badges"
	"github.com/claritybank/badge-server/internal/handlers/v1/httperr"
	"github.com/claritybank/badge-server/internal/logging"
	"github.com/claritybank/badge-server/internal/service"
)

// MoveFundsBody is the request body for a deposit or withdrawal. The server
// records the time of the movement.
type MoveFundsBody struct {
	Amount      string `json:"amount" doc:"Positive decimal amount"`
	Category    string `json:"category" minLength:"1" doc:"Category name, e.g. 'Groceries' or 'Salary / Income'"`
	Description string `json:"description" minLength:"1" maxLength:"50" doc:"Short description"`
}

// MoveFundsInput is the Huma input for a deposit or withdrawal.
type MoveFundsInput struct {
	AccountPath
	Body MoveFundsBody
}

// MoveFundsResponse is the response body for a deposit or withdrawal.
type MoveFundsResponse struct {
	TransactionID string `json:"transactionID" doc:"Recorded transaction UUID"`
	Balance       string `json:"balance" doc:"Balance after the movement"`
}

type MoveFundsOutput struct {
	Body MoveFundsResponse
}

type fundsMover interface {
	Deposit(ctx context.Context, accountID uuid.UUID, m service.Movement) (*service.MovementResult, error)
	Withdraw(ctx context.Context, accountID uuid.UUID, m service.Movement) (*service.MovementResult, error)
}

// MoveFundsHandler handles POST /v1/account/{accountID}/deposit and
// POST /v1/account/{accountID}/withdraw.
type MoveFundsHandler struct {
	AccountService fundsMover
}

func NewMoveFundsHandler(svc fundsMover) *MoveFundsHandler {
	return &MoveFundsHandler{AccountService: svc}
}

func (h *MoveFundsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "deposit",
		Method:      http.MethodPost,
		Path:        "/v1/account/{accountID}/deposit",
		Summary:     "Deposit funds",
		Description: "Records a deposit and credits the account. A single deposit may not exceed 1,000,000.",
		Tags:        []string{"Accounts"},
	}, h.deposit)

	huma.Register(api, huma.Operation{
		OperationID: "withdraw",
		Method:      http.MethodPost,
		Path:        "/v1/account/{accountID}/withdraw",
		Summary:     "Withdraw funds",
		Description: "Records a withdrawal and debits the account. Fails with 422 when the balance does not cover it.",
		Tags:        []string{"Accounts"},
	}, h.withdraw)
}

func parseMoveFundsInput(input *MoveFundsInput) (uuid.UUID, service.Movement, error) {
	accountID, err := input.id()
	if err != nil {
		return uuid.Nil, service.Movement{}, err
	}

	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return uuid.Nil, service.Movement{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	category, err := badges.ParseCategory(input.Body.Category)
	if err != nil {
		return uuid.Nil, service.Movement{}, huma.NewError(http.StatusBadRequest, "invalid category", err)
	}

	return accountID, service.Movement{
		Amount:      amount,
		Category:    category,
		Description: input.Body.Description,
	}, nil
}

func (h *MoveFundsHandler) deposit(ctx context.Context, input *MoveFundsInput) (*MoveFundsOutput, error) {
	return h.handle(ctx, input, "depositMs", h.AccountService.Deposit)
}

func (h *MoveFundsHandler) withdraw(ctx context.Context, input *MoveFundsInput) (*MoveFundsOutput, error) {
	return h.handle(ctx, input, "withdrawMs", h.AccountService.Withdraw)
}

func (h *MoveFundsHandler) handle(
	ctx context.Context,
	input *MoveFundsInput,
	timingName string,
	move func(context.Context, uuid.UUID, service.Movement) (*service.MovementResult, error),
) (*MoveFundsOutput, error) {
	logData := logging.GetLogData(ctx)

	accountID, movement, err := parseMoveFundsInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming(timingName)
	}
	result, err := move(ctx, accountID, movement)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromService(err, "failed to move funds")
	}

	if logData != nil {
		logData.AddData("accountID", accountID.String())
		logData.AddData("transactionID", result.TransactionID.String())
	}

	return &MoveFundsOutput{Body: MoveFundsResponse{
		TransactionID: result.TransactionID.String(),
		Balance:       result.Balance.String(),
	}}, nil
}
