package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/claritybank/badge-server/internal/storage"
	"github.com/claritybank/badge-server/internal/storage/sqlconfig"
)

// CreateAccount opens an account with an initial balance. AccountID is set
// once Perform succeeds.
type CreateAccount struct {
	UserID         uuid.UUID
	AccountNumber  string
	BankID         string
	BankName       string
	InitialBalance decimal.Decimal

	AccountID uuid.UUID
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if c.InitialBalance.IsNegative() {
		return fmt.Errorf("%w: initial balance must not be negative", ErrInvalidAmount)
	}

	id, err := writer.Accounts.Insert(ctx, &sqlconfig.AccountCreate{
		UserID:        c.UserID,
		AccountNumber: c.AccountNumber,
		BankID:        c.BankID,
		BankName:      c.BankName,
		Balance:       c.InitialBalance,
	})
	if err != nil {
		return err
	}

	c.AccountID = id
	return nil
}
