package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/claritybank/badge-server/internal/handlers/v1/httperr"
	"github.com/claritybank/badge-server/internal/logging"
	"github.com/claritybank/badge-server/internal/service"
)

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountBody is the request body fields for creating an account.
type CreateAccountBody struct {
	UserID        string `json:"userID" format:"uuid" doc:"Owner UUID"`
	AccountNumber string `json:"accountNumber" minLength:"1" maxLength:"34" doc:"Account number"`
	BankID        string `json:"bankID" minLength:"1" doc:"Bank identifier"`
	BankName      string `json:"bankName" minLength:"1" doc:"Bank name"`
	Balance       string `json:"balance,omitempty" doc:"Initial balance (e.g. '0' or '1234.56'), defaults to 1000"`
}

// CreateAccountResponse is the response body for creating an account.
type CreateAccountResponse struct {
	ID string `json:"id" doc:"Created account UUID"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   CreateAccountResponse
}

// accountCreator is the interface for creating accounts.
type accountCreator interface {
	CreateAccount(ctx context.Context, account service.Account) (uuid.UUID, error)
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	AccountService accountCreator
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-account",
		Method:        http.MethodPost,
		Path:          "/v1/account",
		Summary:       "Create an account",
		Description:   "Opens a bank account for an existing user with the given initial balance.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (service.Account, error) {
	userID, err := uuid.FromString(input.Body.UserID)
	if err != nil {
		return service.Account{}, huma.NewError(http.StatusBadRequest, "invalid userID", err)
	}

	balance := service.DefaultInitialBalance
	if input.Body.Balance != "" {
		balance, err = decimal.NewFromString(input.Body.Balance)
		if err != nil {
			return service.Account{}, huma.NewError(http.StatusBadRequest, "invalid balance", err)
		}
	}

	return service.Account{
		UserID:        userID,
		AccountNumber: input.Body.AccountNumber,
		BankID:        input.Body.BankID,
		BankName:      input.Body.BankName,
		Balance:       balance,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	account, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	id, err := h.AccountService.CreateAccount(ctx, account)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromService(err, "failed to create account")
	}

	if logData != nil {
		logData.AddData("accountID", id.String())
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   CreateAccountResponse{ID: id.String()},
	}, nil
}
