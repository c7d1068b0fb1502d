package account

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/claritybank/badge-server/internal/handlers/v1/httperr"
	"github.com/claritybank/badge-server/internal/service"
)

// AccountPath addresses one account.
type AccountPath struct {
	AccountID string `path:"accountID" format:"uuid" doc:"Account UUID"`
}

func (p AccountPath) id() (uuid.UUID, error) {
	id, err := uuid.FromString(p.AccountID)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}
	return id, nil
}

type GetAccountOutput struct {
	Body Account
}

type accountGetter interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*service.Account, error)
}

// GetAccountHandler handles GET /v1/account/{accountID}.
type GetAccountHandler struct {
	AccountService accountGetter
}

func NewGetAccountHandler(svc accountGetter) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{accountID}",
		Summary:     "Get an account",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *AccountPath) (*GetAccountOutput, error) {
	id, err := input.id()
	if err != nil {
		return nil, err
	}

	acc, err := h.AccountService.GetAccount(ctx, id)
	if err != nil {
		return nil, httperr.FromService(err, "failed to get account")
	}

	return &GetAccountOutput{Body: Account{
		ID:            acc.ID.String(),
		UserID:        acc.UserID.String(),
		AccountNumber: acc.AccountNumber,
		BankID:        acc.BankID,
		BankName:      acc.BankName,
		Balance:       acc.Balance.String(),
		CreatedAt:     acc.CreatedAt.Format(time.RFC3339),
	}}, nil
}
