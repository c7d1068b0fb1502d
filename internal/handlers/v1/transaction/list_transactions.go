package transaction

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

// ListTransactionsCursor represents a pagination cursor in request and response bodies.
// It bundles position, limit, and maxCreationTime so subsequent pages use consistent parameters.
type ListTransactionsCursor struct {
	Position        int    `json:"position" minimum:"0" doc:"Rows already returned for this account"`
	Limit           int    `json:"limit" minimum:"1" maximum:"100" doc:"Transactions per page, newest first"`
	MaxCreationTime string `json:"maxCreationTime" format:"date-time" doc:"created_at ceiling pinned by the first page so later writes do not shift pages"`
}

// ListTransactionsBody is the request body for listing transactions.
type ListTransactionsBody struct {
	AccountID string                  `json:"accountID" format:"uuid" doc:"Account UUID"`
	Cursor    *ListTransactionsCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Body ListTransactionsBody
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction           `json:"transactions" doc:"Account transactions for this page"`
	NextCursor   *ListTransactionsCursor `json:"nextCursor,omitempty" doc:"Pass back to continue; omitted once the account history is exhausted"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, accountID uuid.UUID, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error)
}

// ListTransactionsHandler handles POST /v1/transaction/list.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/list",
		Summary:     "List transactions",
		Description: "Returns an account's transactions newest first, using cursor-based pagination.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput parses and validates the API input.
// When a cursor is provided, limit and maxCreationTime come from it.
// Without a cursor, the service uses its default limit.
func parseListTransactionsInput(input *ListTransactionsInput) (accountID uuid.UUID, cursor *service.TransactionCursor, err error) {
	accountID, err = uuid.FromString(input.Body.AccountID)
	if err != nil {
		return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}

	if input.Body.Cursor == nil {
		return accountID, nil, nil
	}

	if input.Body.Cursor.Position < 0 {
		return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "cursor position must be non-negative")
	}

	maxCreationTime, parseErr := time.Parse(time.RFC3339Nano, input.Body.Cursor.MaxCreationTime)
	if parseErr != nil {
		return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid cursor maxCreationTime", parseErr)
	}

	return accountID, &service.TransactionCursor{
		Position:        input.Body.Cursor.Position,
		Limit:           input.Body.Cursor.Limit,
		MaxCreationTime: maxCreationTime,
	}, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)
	accountID, requestCursor, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	transactions, nextCursor, err := h.TransactionService.ListTransactions(ctx, accountID, requestCursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromService(err, "failed to list transactions")
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(transactions)),
	}

	for i, tx := range transactions {
		resp.Transactions[i] = Transaction{
			ID:          tx.ID.String(),
			AccountID:   tx.AccountID.String(),
			Direction:   string(tx.Direction),
			Amount:      tx.Amount.String(),
			Category:    string(tx.Category),
			Description: tx.Description,
			OccurredAt:  tx.OccurredAt.Format(time.RFC3339),
			CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		}
	}

	if nextCursor != nil {
		resp.NextCursor = &ListTransactionsCursor{
			Position:        nextCursor.Position,
			Limit:           nextCursor.Limit,
			MaxCreationTime: nextCursor.MaxCreationTime.Format(time.RFC3339Nano),
		}
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
