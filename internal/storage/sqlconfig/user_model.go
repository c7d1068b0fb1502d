package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents a users record. CreatedAt is the signup instant.
type User struct {
	ID        uuid.UUID `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

// UserCreate is the input for creating a new user.
type UserCreate struct {
	FirstName string
	LastName  string
	Email     string
}

// IUserTable defines the interface for user storage operations.
//
//go:generate mockery --name IUserTable --output mock_IUserTable.go
type IUserTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Insert(ctx context.Context, create *UserCreate) (uuid.UUID, error)
}
