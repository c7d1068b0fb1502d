package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/claritybank/badge-server/internal/config"
	"github.com/claritybank/badge-server/internal/storage/sqlconfig"
)

// Storage is the read side of the database. Writes that touch balances go
// through Write so they run inside one transaction.
type Storage struct {
	sqlDB        *sql.DB
	DB           bob.DB
	Users        sqlconfig.IUserTable
	Accounts     sqlconfig.IAccountTable
	Transactions sqlconfig.ITransactionTable
	Badges       sqlconfig.IBadgeTable
}

func NewStorage(env *config.Config) (*Storage, error) {
	return Open(env.PostgresURL())
}

// Open connects to the database at connStr and checks it is reachable.
func Open(connStr string) (*Storage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return New(db), nil
}

func New(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		sqlDB:        db,
		DB:           bobDB,
		Users:        sqlconfig.NewUsersTable(bobDB),
		Accounts:     sqlconfig.NewAccountsTable(bobDB),
		Transactions: sqlconfig.NewTransactionsTable(bobDB),
		Badges:       sqlconfig.NewBadgesTable(bobDB),
	}
}

// Write begins a transaction. The caller must Commit or Rollback the Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return NewWriter(tx), nil
}

func (s *Storage) Close() error {
	return s.sqlDB.Close()
}

// Ping checks the database is still reachable.
func (s *Storage) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return errors.New("storage: no database connection")
	}
	return s.sqlDB.PingContext(ctx)
}
