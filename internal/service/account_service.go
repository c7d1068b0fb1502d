package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/claritybank/badge-server/internal/operator/actions"
	"github.com/claritybank/badge-server/internal/storage"
)

// AccountService handles account business logic. Every balance change goes
// through the operator queue.
type AccountService struct {
	storage   *storage.Storage
	processor ActionProcessor
	now       func() time.Time
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage, processor ActionProcessor, now func() time.Time) *AccountService {
	return &AccountService{storage: store, processor: processor, now: now}
}

// CreateAccount opens an account for an existing user and returns its ID.
func (s *AccountService) CreateAccount(ctx context.Context, account Account) (uuid.UUID, error) {
	user, err := s.storage.Users.FindByID(ctx, account.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return uuid.Nil, ErrUserNotFound
	}

	action := &actions.CreateAccount{
		UserID:         account.UserID,
		AccountNumber:  account.AccountNumber,
		BankID:         account.BankID,
		BankName:       account.BankName,
		InitialBalance: account.Balance,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.AccountID, nil
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	row, err := s.storage.Accounts.FindByID(ctx, id, false)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if row == nil {
		return nil, ErrAccountNotFound
	}
	return &Account{
		ID:            row.ID,
		UserID:        row.UserID,
		AccountNumber: row.AccountNumber,
		BankID:        row.BankID,
		BankName:      row.BankName,
		Balance:       row.Balance,
		CreatedAt:     row.CreatedAt,
	}, nil
}

// Deposit credits the account. The movement is stamped with the server clock.
func (s *AccountService) Deposit(ctx context.Context, accountID uuid.UUID, m Movement) (*MovementResult, error) {
	return s.move(ctx, actions.NewDeposit(accountID, m.Amount, string(m.Category), m.Description, s.now()))
}

// Withdraw debits the account, failing with ErrInsufficientFunds when the
// balance does not cover the amount.
func (s *AccountService) Withdraw(ctx context.Context, accountID uuid.UUID, m Movement) (*MovementResult, error) {
	return s.move(ctx, actions.NewWithdrawal(accountID, m.Amount, string(m.Category), m.Description, s.now()))
}

func (s *AccountService) move(ctx context.Context, action *actions.MoveFunds) (*MovementResult, error) {
	if err := action.Validate(); err != nil {
		return nil, err
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return &MovementResult{TransactionID: action.TransactionID, Balance: action.NewBalance}, nil
}
