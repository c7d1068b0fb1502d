package actions

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/claritybank/badge-server/internal/storage"
	"github.com/claritybank/badge-server/internal/storage/sqlconfig"
)

type mockAccountTable struct {
	mock.Mock
}

func (m *mockAccountTable) FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*sqlconfig.Account, error) {
	args := m.Called(ctx, id, forUpdate)
	account, _ := args.Get(0).(*sqlconfig.Account)
	return account, args.Error(1)
}

func (m *mockAccountTable) Insert(ctx context.Context, create *sqlconfig.AccountCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockAccountTable) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return m.Called(ctx, id, balance).Error(0)
}

type mockTransactionTable struct {
	mock.Mock
}

func (m *mockTransactionTable) Insert(ctx context.Context, create *sqlconfig.TransactionCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockTransactionTable) List(ctx context.Context, filter *sqlconfig.TransactionFilter) ([]*sqlconfig.Transaction, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*sqlconfig.Transaction)
	return rows, args.Error(1)
}

type noopTxn struct{}

func (noopTxn) Commit(context.Context) error   { return nil }
func (noopTxn) Rollback(context.Context) error { return nil }

func newTestWriter() (*storage.Writer, *mockAccountTable, *mockTransactionTable) {
	accounts := new(mockAccountTable)
	transactions := new(mockTransactionTable)
	return storage.NewWriterWithTables(noopTxn{}, accounts, transactions), accounts, transactions
}

func decimalEq(want string) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString(want)) })
}

var occurredAt = time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)

func TestMoveFunds_Deposit(t *testing.T) {
	writer, accounts, transactions := newTestWriter()
	accountID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	txID := uuid.Must(uuid.NewV4())

	accounts.On("FindByID", mock.Anything, accountID, true).
		Return(&sqlconfig.Account{ID: accountID, UserID: userID, Balance: decimal.RequireFromString("100.00")}, nil)
	transactions.On("Insert", mock.Anything, mock.MatchedBy(func(c *sqlconfig.TransactionCreate) bool {
		return c.UserID == userID && c.Direction == DirectionDeposit && c.Amount.Equal(decimal.RequireFromString("50.25"))
	})).Return(txID, nil)
	accounts.On("UpdateBalance", mock.Anything, accountID, decimalEq("150.25")).Return(nil)

	action := NewDeposit(accountID, decimal.RequireFromString("50.25"), "Salary / Income", "Paycheck", occurredAt)
	require.NoError(t, action.Perform(context.Background(), writer))

	assert.Equal(t, txID, action.TransactionID)
	assert.True(t, action.NewBalance.Equal(decimal.RequireFromString("150.25")))
	accounts.AssertExpectations(t)
	transactions.AssertExpectations(t)
}

func TestMoveFunds_Withdrawal(t *testing.T) {
	writer, accounts, transactions := newTestWriter()
	accountID := uuid.Must(uuid.NewV4())

	accounts.On("FindByID", mock.Anything, accountID, true).
		Return(&sqlconfig.Account{ID: accountID, Balance: decimal.RequireFromString("100.00")}, nil)
	transactions.On("Insert", mock.Anything, mock.Anything).Return(uuid.Must(uuid.NewV4()), nil)
	accounts.On("UpdateBalance", mock.Anything, accountID, decimalEq("0")).Return(nil)

	action := NewWithdrawal(accountID, decimal.RequireFromString("100.00"), "Rent", "March rent", occurredAt)
	require.NoError(t, action.Perform(context.Background(), writer))

	assert.True(t, action.NewBalance.IsZero())
}

func TestMoveFunds_InsufficientFunds(t *testing.T) {
	writer, accounts, transactions := newTestWriter()
	accountID := uuid.Must(uuid.NewV4())

	accounts.On("FindByID", mock.Anything, accountID, true).
		Return(&sqlconfig.Account{ID: accountID, Balance: decimal.RequireFromString("99.99")}, nil)

	action := NewWithdrawal(accountID, decimal.RequireFromString("100.00"), "Rent", "March rent", occurredAt)
	err := action.Perform(context.Background(), writer)

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	transactions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	accounts.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestMoveFunds_AccountNotFound(t *testing.T) {
	writer, accounts, _ := newTestWriter()
	accountID := uuid.Must(uuid.NewV4())
	accounts.On("FindByID", mock.Anything, accountID, true).Return(nil, nil)

	err := NewDeposit(accountID, decimal.NewFromInt(1), "Other", "Gift", occurredAt).Perform(context.Background(), writer)

	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestMoveFunds_StorageError(t *testing.T) {
	writer, accounts, transactions := newTestWriter()
	accountID := uuid.Must(uuid.NewV4())
	insertErr := errors.New("insert failed")

	accounts.On("FindByID", mock.Anything, accountID, true).
		Return(&sqlconfig.Account{ID: accountID, Balance: decimal.NewFromInt(10)}, nil)
	transactions.On("Insert", mock.Anything, mock.Anything).Return(uuid.Nil, insertErr)

	err := NewDeposit(accountID, decimal.NewFromInt(1), "Other", "Gift", occurredAt).Perform(context.Background(), writer)

	assert.ErrorIs(t, err, insertErr)
	accounts.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestMoveFunds_Validate(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	tests := []struct {
		name    string
		action  *MoveFunds
		wantErr bool
		is      error
	}{
		{"zero amount", NewDeposit(id, decimal.Zero, "Other", "x", occurredAt), true, ErrInvalidAmount},
		{"negative amount", NewWithdrawal(id, decimal.NewFromInt(-1), "Other", "x", occurredAt), true, ErrInvalidAmount},
		{"deposit over cap", NewDeposit(id, decimal.RequireFromString("1000000.01"), "Other", "x", occurredAt), true, ErrInvalidAmount},
		{"deposit at cap", NewDeposit(id, decimal.NewFromInt(1_000_000), "Other", "x", occurredAt), false, nil},
		{"large withdrawal allowed", NewWithdrawal(id, decimal.NewFromInt(2_000_000), "Other", "x", occurredAt), false, nil},
		{"empty description", NewDeposit(id, decimal.NewFromInt(1), "Other", "", occurredAt), true, ErrInvalidMovement},
		{"long description", NewDeposit(id, decimal.NewFromInt(1), "Other", strings.Repeat("a", 51), occurredAt), true, ErrInvalidMovement},
		{"max description", NewDeposit(id, decimal.NewFromInt(1), "Other", strings.Repeat("a", 50), occurredAt), false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.action.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestCreateAccount(t *testing.T) {
	writer, accounts, _ := newTestWriter()
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())

	accounts.On("Insert", mock.Anything, mock.MatchedBy(func(c *sqlconfig.AccountCreate) bool {
		return c.UserID == userID && c.Balance.Equal(decimal.NewFromInt(1000))
	})).Return(accountID, nil)

	action := &CreateAccount{UserID: userID, BankName: "ClarityBank", InitialBalance: decimal.NewFromInt(1000)}
	require.NoError(t, action.Perform(context.Background(), writer))
	assert.Equal(t, accountID, action.AccountID)

	negative := &CreateAccount{UserID: userID, InitialBalance: decimal.NewFromInt(-5)}
	assert.ErrorIs(t, negative.Perform(context.Background(), writer), ErrInvalidAmount)
}
