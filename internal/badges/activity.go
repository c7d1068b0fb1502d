package badges

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Direction is the side of the ledger a transaction moves money on.
type Direction string

const (
	DirectionDeposit    Direction = "deposit"
	DirectionWithdrawal Direction = "withdrawal"
)

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == DirectionDeposit || d == DirectionWithdrawal
}

// Transaction is an immutable money movement on a single account.
// Amount is always non-negative; Direction carries the sign.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Direction   Direction
	Amount      decimal.Decimal
	Category    Category
	Description string
	OccurredAt  time.Time
}

// wellFormed reports whether the record can take part in an evaluation pass.
// A zero OccurredAt stands for a timestamp that could not be read.
func (t Transaction) wellFormed() bool {
	return !t.OccurredAt.IsZero() && !t.Amount.IsNegative() && t.Direction.Valid()
}

// Account is a point-in-time read of a bank account.
type Account struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	CurrentBalance decimal.Decimal
}

// User is the part of a user profile the engine needs.
type User struct {
	ID               uuid.UUID
	AccountCreatedAt time.Time
}

// AuxiliaryFlags are facts about the user that only the presentation layer knows.
// The zero value is the documented default: every flag false.
type AuxiliaryFlags struct {
	// HasDownloadedReceipt is set once the user exported a transaction receipt.
	HasDownloadedReceipt bool
}

// Activity is everything a predicate may look at during one evaluation pass.
// Transactions are well-formed and sorted by OccurredAt ascending.
// Now is the single time reference of the pass and its location is the
// zone used for hour-of-day and calendar-day rules.
type Activity struct {
	Transactions []Transaction
	Account      Account
	User         *User
	Flags        AuxiliaryFlags
	Now          time.Time
}

// EarnedBadge is a badge whose predicate held for an activity snapshot.
type EarnedBadge struct {
	BadgeID     BadgeID
	DisplayName string
	Description string
	EarnedAt    time.Time
}
