package account

// Account is the API response model for an account.
type Account struct {
	ID            string `json:"id" doc:"Account UUID"`
	UserID        string `json:"userID" doc:"Owner UUID"`
	AccountNumber string `json:"accountNumber" doc:"Account number"`
	BankID        string `json:"bankID" doc:"Bank identifier"`
	BankName      string `json:"bankName" doc:"Bank name"`
	Balance       string `json:"balance" doc:"Decimal balance"`
	CreatedAt     string `json:"createdAt" doc:"RFC3339 creation time"`
}
