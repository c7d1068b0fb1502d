package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents a user profile in the service layer.
type User struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
}
