package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/claritybank/badge-server/internal/storage/sqlconfig"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("badges"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("testpassword"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := migrate.New("file://../../migrations", dsn)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err)
	}

	store, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedAccount(t *testing.T, store *Storage, balance string) (uuid.UUID, uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	userID, err := store.Users.Insert(ctx, &sqlconfig.UserCreate{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     uuid.Must(uuid.NewV4()).String() + "@example.com",
	})
	require.NoError(t, err)

	accountID, err := store.Accounts.Insert(ctx, &sqlconfig.AccountCreate{
		UserID:        userID,
		AccountNumber: "0001234567",
		BankID:        "clarity",
		BankName:      "ClarityBank",
		Balance:       decimal.RequireFromString(balance),
	})
	require.NoError(t, err)
	return userID, accountID
}

func TestStorage_UserAndAccountRoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	userID, accountID := seedAccount(t, store, "1000.00")

	user, err := store.Users.FindByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ada", user.FirstName)
	assert.False(t, user.CreatedAt.IsZero())

	account, err := store.Accounts.FindByID(ctx, accountID, false)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, userID, account.UserID)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(1000)))

	missing, err := store.Accounts.FindByID(ctx, uuid.Must(uuid.NewV4()), false)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStorage_WriterCommitAndRollback(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	userID, accountID := seedAccount(t, store, "100.00")

	writer, err := store.Write(ctx)
	require.NoError(t, err)
	_, err = writer.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
		AccountID:   accountID,
		UserID:      userID,
		Direction:   "deposit",
		Amount:      decimal.RequireFromString("25.50"),
		Category:    "Salary / Income",
		Description: "Paycheck",
	})
	require.NoError(t, err)
	require.NoError(t, writer.Accounts.UpdateBalance(ctx, accountID, decimal.RequireFromString("125.50")))
	require.NoError(t, writer.Commit())

	writer, err = store.Write(ctx)
	require.NoError(t, err)
	require.NoError(t, writer.Accounts.UpdateBalance(ctx, accountID, decimal.Zero))
	require.NoError(t, writer.Rollback())

	account, err := store.Accounts.FindByID(ctx, accountID, false)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("125.50")), account.Balance.String())

	txs, err := store.Transactions.List(ctx, &sqlconfig.TransactionFilter{AccountID: &accountID})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "deposit", txs[0].Direction)
	assert.Equal(t, "Paycheck", txs[0].Description)
}

func TestStorage_TransactionsNewestFirstWithExtraRow(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	userID, accountID := seedAccount(t, store, "0")

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := store.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
			AccountID:   accountID,
			UserID:      userID,
			Direction:   "withdrawal",
			Amount:      decimal.NewFromInt(int64(i + 1)),
			Category:    "Groceries",
			Description: "Market",
			OccurredAt:  base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}

	rows, err := store.Transactions.List(ctx, &sqlconfig.TransactionFilter{AccountID: &accountID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].OccurredAt.Equal(base.AddDate(0, 0, 4)))
	assert.True(t, rows[1].OccurredAt.Equal(base.AddDate(0, 0, 3)))
}

func TestStorage_BadgeInsertIsIdempotent(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	userID, _ := seedAccount(t, store, "0")

	first := &sqlconfig.Badge{
		UserID:      userID,
		BadgeID:     "gold-saver",
		DisplayName: "Gold Saver",
		Description: "Maintain a balance of $10,000 or more.",
		EarnedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	inserted, err := store.Badges.Insert(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)

	again := *first
	again.EarnedAt = first.EarnedAt.AddDate(0, 1, 0)
	inserted, err = store.Badges.Insert(ctx, &again)
	require.NoError(t, err)
	assert.False(t, inserted)

	badges, err := store.Badges.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.True(t, badges[0].EarnedAt.Equal(first.EarnedAt), "first award is kept")
}

func TestStorage_ConcurrentBadgeInserts(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	userID, _ := seedAccount(t, store, "0")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Badges.Insert(ctx, &sqlconfig.Badge{
				UserID:      userID,
				BadgeID:     "night-owl",
				DisplayName: "Night Owl",
				Description: "Make a transaction between midnight and 5 AM.",
				EarnedAt:    time.Now(),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	badges, err := store.Badges.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, badges, 1)
}
