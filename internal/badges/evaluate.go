package badges

import (
	"sort"
	"time"
)

// Input is what the caller has read for one user before an evaluation pass.
// Transactions may arrive in any order. Account nil means the account could
// not be read; User and Flags are optional.
type Input struct {
	Transactions []Transaction
	Account      *Account
	User         *User
	Flags        *AuxiliaryFlags
}

// Evaluator runs a catalog against activity snapshots. It holds no state
// between passes and is safe for concurrent use.
type Evaluator struct {
	catalog       *Catalog
	includeLegacy bool
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithLegacy makes the evaluator emit legacy badge ids as well.
func WithLegacy(include bool) EvaluatorOption {
	return func(e *Evaluator) {
		e.includeLegacy = include
	}
}

// NewEvaluator creates an Evaluator for the given catalog.
func NewEvaluator(catalog *Catalog, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{catalog: catalog}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the evaluator runs.
func (e *Evaluator) Catalog() *Catalog {
	return e.catalog
}

// Evaluate returns every badge whose predicate holds at now, in catalog order.
// It never persists anything and never fails: a missing account yields no
// badges and malformed transactions are left out of the pass.
// "First" and "total" rules read in.Transactions as the whole history; a
// caller that truncates it gets answers for the truncated window.
func (e *Evaluator) Evaluate(in Input, now time.Time) []EarnedBadge {
	activity, ok := newActivity(in, now)
	if !ok {
		return []EarnedBadge{}
	}
	return e.evaluate(activity, nil)
}

// evaluate runs every eligible definition not rejected by skip.
func (e *Evaluator) evaluate(activity Activity, skip func(BadgeID) bool) []EarnedBadge {
	earned := []EarnedBadge{}
	if len(activity.Transactions) == 0 {
		return earned
	}

	for _, d := range e.catalog.definitions {
		if d.Legacy && !e.includeLegacy {
			continue
		}
		if skip != nil && skip(d.ID) {
			continue
		}
		if d.Earned(activity) {
			earned = append(earned, EarnedBadge{
				BadgeID:     d.ID,
				DisplayName: d.DisplayName,
				Description: d.Description,
				EarnedAt:    activity.Now,
			})
		}
	}
	return earned
}

// newActivity shapes caller input into a predicate-ready snapshot. The input
// slice is copied, never reordered in place.
func newActivity(in Input, now time.Time) (Activity, bool) {
	if in.Account == nil {
		return Activity{}, false
	}

	txs := make([]Transaction, 0, len(in.Transactions))
	for _, t := range in.Transactions {
		if t.wellFormed() {
			txs = append(txs, t)
		}
	}
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].OccurredAt.Before(txs[j].OccurredAt)
	})

	activity := Activity{
		Transactions: txs,
		Account:      *in.Account,
		User:         in.User,
		Now:          now,
	}
	if in.Flags != nil {
		activity.Flags = *in.Flags
	}
	return activity, true
}
