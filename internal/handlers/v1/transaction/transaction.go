package transaction

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID          string `json:"id" doc:"Transaction UUID"`
	AccountID   string `json:"accountID" doc:"Account UUID"`
	Direction   string `json:"direction" enum:"deposit,withdrawal" doc:"Money in or out"`
	Amount      string `json:"amount" doc:"Non-negative decimal amount"`
	Category    string `json:"category" doc:"Category name"`
	Description string `json:"description" doc:"Short description"`
	OccurredAt  string `json:"occurredAt" doc:"RFC3339 time the movement happened"`
	CreatedAt   string `json:"createdAt" doc:"RFC3339 time the record was created"`
}
