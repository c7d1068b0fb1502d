package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/claritybank/badge-server/internal/storage"
	"github.com/claritybank/badge-server/internal/storage/sqlconfig"
)

const (
	DirectionDeposit    = "deposit"
	DirectionWithdrawal = "withdrawal"

	MaxDescriptionLength = 50
)

// MaxDeposit caps a single deposit.
var MaxDeposit = decimal.NewFromInt(1_000_000)

// MoveFunds records a deposit or withdrawal and applies it to the account
// balance. The account row is locked for the length of the transaction so
// concurrent moves on one account serialize.
//
// TransactionID and NewBalance are set once Perform succeeds.
type MoveFunds struct {
	AccountID   uuid.UUID
	Direction   string
	Amount      decimal.Decimal
	Category    string
	Description string
	OccurredAt  time.Time

	TransactionID uuid.UUID
	NewBalance    decimal.Decimal
}

func NewDeposit(accountID uuid.UUID, amount decimal.Decimal, category, description string, occurredAt time.Time) *MoveFunds {
	return &MoveFunds{
		AccountID:   accountID,
		Direction:   DirectionDeposit,
		Amount:      amount,
		Category:    category,
		Description: description,
		OccurredAt:  occurredAt,
	}
}

func NewWithdrawal(accountID uuid.UUID, amount decimal.Decimal, category, description string, occurredAt time.Time) *MoveFunds {
	return &MoveFunds{
		AccountID:   accountID,
		Direction:   DirectionWithdrawal,
		Amount:      amount,
		Category:    category,
		Description: description,
		OccurredAt:  occurredAt,
	}
}

// Validate checks the move without touching storage.
func (m *MoveFunds) Validate() error {
	if !m.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidAmount)
	}
	if m.Direction == DirectionDeposit && m.Amount.GreaterThan(MaxDeposit) {
		return fmt.Errorf("%w: deposit must not exceed %s", ErrInvalidAmount, MaxDeposit)
	}
	if m.Direction != DirectionDeposit && m.Direction != DirectionWithdrawal {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidMovement, m.Direction)
	}
	if n := len([]rune(m.Description)); n == 0 || n > MaxDescriptionLength {
		return fmt.Errorf("%w: description must be 1 to %d characters", ErrInvalidMovement, MaxDescriptionLength)
	}
	return nil
}

func (m *MoveFunds) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := m.Validate(); err != nil {
		return err
	}

	account, err := writer.Accounts.FindByID(ctx, m.AccountID, true)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}

	newBalance := account.Balance.Add(m.Amount)
	if m.Direction == DirectionWithdrawal {
		if account.Balance.LessThan(m.Amount) {
			return ErrInsufficientFunds
		}
		newBalance = account.Balance.Sub(m.Amount)
	}

	id, err := writer.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
		AccountID:   m.AccountID,
		UserID:      account.UserID,
		Direction:   m.Direction,
		Amount:      m.Amount,
		Category:    m.Category,
		Description: m.Description,
		OccurredAt:  m.OccurredAt,
	})
	if err != nil {
		return err
	}

	if err := writer.Accounts.UpdateBalance(ctx, m.AccountID, newBalance); err != nil {
		return err
	}

	m.TransactionID = id
	m.NewBalance = newBalance
	return nil
}
