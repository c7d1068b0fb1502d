package service

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/claritybank/badge-server/internal/operator/actions"
	"github.com/claritybank/badge-server/internal/storage"
	"github.com/claritybank/badge-server/internal/storage/sqlconfig"
)

type mockUserTable struct {
	mock.Mock
}

func (m *mockUserTable) FindByID(ctx context.Context, id uuid.UUID) (*sqlconfig.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*sqlconfig.User)
	return user, args.Error(1)
}

func (m *mockUserTable) Insert(ctx context.Context, create *sqlconfig.UserCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

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

// fakeBadgeTable mimics the (user_id, badge_id) primary key.
type fakeBadgeTable struct {
	mu      sync.Mutex
	rows    []*sqlconfig.Badge
	inserts int
	err     error
	// afterList runs once the rows are read, outside the lock.
	afterList func()
}

func (f *fakeBadgeTable) ListByUser(_ context.Context, userID uuid.UUID) ([]*sqlconfig.Badge, error) {
	out, err := f.listByUser(userID)
	if err == nil && f.afterList != nil {
		f.afterList()
	}
	return out, err
}

func (f *fakeBadgeTable) listByUser(userID uuid.UUID) ([]*sqlconfig.Badge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*sqlconfig.Badge
	for _, row := range f.rows {
		if row.UserID == userID {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBadgeTable) Insert(_ context.Context, badge *sqlconfig.Badge) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	for _, row := range f.rows {
		if row.UserID == badge.UserID && row.BadgeID == badge.BadgeID {
			return false, nil
		}
	}
	copied := *badge
	f.rows = append(f.rows, &copied)
	f.inserts++
	return true, nil
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	return m.Called(ctx, action).Error(0)
}

type testStore struct {
	store        *storage.Storage
	users        *mockUserTable
	accounts     *mockAccountTable
	transactions *mockTransactionTable
	badges       *fakeBadgeTable
}

func newTestStore() *testStore {
	ts := &testStore{
		users:        new(mockUserTable),
		accounts:     new(mockAccountTable),
		transactions: new(mockTransactionTable),
		badges:       &fakeBadgeTable{},
	}
	ts.store = &storage.Storage{
		Users:        ts.users,
		Accounts:     ts.accounts,
		Transactions: ts.transactions,
		Badges:       ts.badges,
	}
	return ts
}

var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }
