package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/claritybank/badge-server/internal/storage"
	"github.com/claritybank/badge-server/internal/storage/sqlconfig"
)

// UserService handles user profile business logic.
type UserService struct {
	storage *storage.Storage
}

func NewUserService(store *storage.Storage) *UserService {
	return &UserService{storage: store}
}

// CreateUser creates a profile and returns its ID. The creation time is the
// signup instant used by early-bird.
func (s *UserService) CreateUser(ctx context.Context, user User) (uuid.UUID, error) {
	return s.storage.Users.Insert(ctx, &sqlconfig.UserCreate{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	})
}

// GetUser returns ErrUserNotFound for unknown ids.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	row, err := s.storage.Users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if row == nil {
		return nil, ErrUserNotFound
	}
	return &User{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
	}, nil
}
