package badges

import (
	"errors"
	"fmt"
)

// BadgeID is the stable key of a badge. Persisted awards are keyed by it,
// so ids are never renamed or reused.
type BadgeID string

const (
	BadgeGoldSaver         BadgeID = "gold-saver"
	BadgeMilestone100      BadgeID = "milestone-100"
	BadgeZeroDebt          BadgeID = "zero-debt"
	BadgeConsistencyChamp  BadgeID = "consistency-champ"
	BadgeSmartSpender      BadgeID = "smart-spender"
	BadgeEarlyBird         BadgeID = "early-bird"
	BadgeNightOwl          BadgeID = "night-owl"
	BadgeActiveUser        BadgeID = "active-user"
	BadgeSavingsStreak     BadgeID = "savings-streak"
	BadgeFinancialExplorer BadgeID = "financial-explorer"

	// Earlier ids of the same rules, kept so old awards still resolve.
	BadgeSmartSaver       BadgeID = "smart-saver"
	BadgeActiveUser10     BadgeID = "active-user-10"
	BadgeConsistencyKing5 BadgeID = "consistency-king-5"
	BadgeBigSaver10k      BadgeID = "big-saver-10k"
)

// Predicate decides whether a badge's condition holds for an activity snapshot.
// It must not mutate the activity and must only use Activity.Now as the clock.
type Predicate func(Activity) bool

// Definition is one entry of the badge catalog.
type Definition struct {
	ID          BadgeID
	DisplayName string
	Description string
	// Legacy entries are only evaluated when the evaluator is asked to.
	Legacy    bool
	Predicate Predicate
}

// Earned reports whether the badge is earned. Nothing is earned without history.
func (d Definition) Earned(activity Activity) bool {
	if len(activity.Transactions) == 0 || d.Predicate == nil {
		return false
	}
	return d.Predicate(activity)
}

// Catalog is the ordered set of badge definitions. Order is display order only.
type Catalog struct {
	definitions []Definition
	index       map[BadgeID]int
}

// NewCatalog validates the definitions and builds a catalog.
func NewCatalog(definitions ...Definition) (*Catalog, error) {
	if len(definitions) == 0 {
		return nil, errors.New("badges: empty catalog")
	}

	c := &Catalog{
		definitions: make([]Definition, len(definitions)),
		index:       make(map[BadgeID]int, len(definitions)),
	}
	for i, d := range definitions {
		if d.ID == "" {
			return nil, fmt.Errorf("badges: definition %d has no id", i)
		}
		if d.Predicate == nil {
			return nil, fmt.Errorf("badges: %s has no predicate", d.ID)
		}
		if _, dup := c.index[d.ID]; dup {
			return nil, fmt.Errorf("badges: duplicate id %s", d.ID)
		}
		c.index[d.ID] = i
		c.definitions[i] = d
	}
	return c, nil
}

// DefaultCatalog builds the catalog shipped with the server.
func DefaultCatalog() (*Catalog, error) {
	return NewCatalog(defaultDefinitions()...)
}

// Definitions returns a copy of the catalog entries in display order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.definitions))
	copy(out, c.definitions)
	return out
}

// Lookup finds a definition by id, legacy ids included.
func (c *Catalog) Lookup(id BadgeID) (Definition, bool) {
	i, ok := c.index[id]
	if !ok {
		return Definition{}, false
	}
	return c.definitions[i], true
}

// Len is the number of entries, legacy ones included.
func (c *Catalog) Len() int {
	return len(c.definitions)
}

func defaultDefinitions() []Definition {
	return []Definition{
		{
			ID:          BadgeGoldSaver,
			DisplayName: "Gold Saver",
			Description: "Awarded for reaching a balance of 10,000.",
			Predicate:   goldSaver,
		},
		{
			ID:          BadgeMilestone100,
			DisplayName: "Century Club",
			Description: "Awarded for making 100 transactions.",
			Predicate:   milestone100,
		},
		{
			ID:          BadgeZeroDebt,
			DisplayName: "Zero Debt",
			Description: "Awarded for having no withdrawals in the last 30 days.",
			Predicate:   zeroDebt,
		},
		{
			ID:          BadgeConsistencyChamp,
			DisplayName: "Consistency Champ",
			Description: "Awarded for 5 consecutive days of deposits.",
			Predicate:   consistencyChamp,
		},
		{
			ID:          BadgeSmartSpender,
			DisplayName: "Smart Spender",
			Description: "Awarded for paying 10 bills or grocery runs from your account.",
			Predicate:   smartSpender,
		},
		{
			ID:          BadgeEarlyBird,
			DisplayName: "Early Bird",
			Description: "Awarded for making your first deposit within 24 hours of signing up.",
			Predicate:   earlyBird,
		},
		{
			ID:          BadgeNightOwl,
			DisplayName: "Night Owl",
			Description: "Awarded for making a transaction between midnight and 5 AM.",
			Predicate:   nightOwl,
		},
		{
			ID:          BadgeActiveUser,
			DisplayName: "Active User",
			Description: "Awarded for making your first 10 transactions.",
			Predicate:   activeUser,
		},
		{
			ID:          BadgeSavingsStreak,
			DisplayName: "Savings Streak",
			Description: "Awarded for depositing in 3 different months while saving more than you spend.",
			Predicate:   savingsStreak,
		},
		{
			ID:          BadgeFinancialExplorer,
			DisplayName: "Financial Explorer",
			Description: "Awarded for downloading your first transaction receipt.",
			Predicate:   financialExplorer,
		},
		{
			ID:          BadgeSmartSaver,
			DisplayName: "Smart Saver",
			Description: "Awarded for having no withdrawals in the last 30 days.",
			Legacy:      true,
			Predicate:   zeroDebt,
		},
		{
			ID:          BadgeActiveUser10,
			DisplayName: "Active User",
			Description: "Awarded for making your first 10 transactions.",
			Legacy:      true,
			Predicate:   activeUser,
		},
		{
			ID:          BadgeConsistencyKing5,
			DisplayName: "Consistency King",
			Description: "Awarded for 5 consecutive days of deposits.",
			Legacy:      true,
			Predicate:   consistencyChamp,
		},
		{
			ID:          BadgeBigSaver10k,
			DisplayName: "Big Saver",
			Description: "Awarded for reaching a balance of 10,000.",
			Legacy:      true,
			Predicate:   goldSaver,
		},
	}
}
