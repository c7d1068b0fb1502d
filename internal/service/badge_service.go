package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/claritybank/badge-server/internal/badges"
	"github.com/claritybank/badge-server/internal/events"
	"github.com/claritybank/badge-server/internal/storage"
)

const defaultHistoryLimit = 500

// BadgeService loads an account's activity and runs it through the badge
// catalog, either read-only or with additive persistence.
type BadgeService struct {
	storage      *storage.Storage
	evaluator    *badges.Evaluator
	awarder      *badges.Awarder
	publisher    events.Publisher
	logger       *logrus.Logger
	location     *time.Location
	historyLimit int
	now          func() time.Time
}

func NewBadgeService(store *storage.Storage, opts Options) *BadgeService {
	return &BadgeService{
		storage:      store,
		evaluator:    opts.Evaluator,
		awarder:      badges.NewAwarder(opts.Evaluator, badgeAwardStore{table: store.Badges}),
		publisher:    opts.Publisher,
		logger:       opts.Logger,
		location:     opts.Location,
		historyLimit: opts.HistoryLimit,
		now:          opts.Now,
	}
}

// Catalog returns every badge definition, legacy entries included, in display order.
func (s *BadgeService) Catalog() []badges.Definition {
	return s.evaluator.Catalog().Definitions()
}

// Evaluate reports the badges the account currently qualifies for. Nothing is persisted.
//
// Both Evaluate and Award see only the newest historyLimit transactions, so
// rules built on the first deposit (early-bird) or on totals (savings-streak,
// milestone counts) are computed over that window for longer histories.
func (s *BadgeService) Evaluate(ctx context.Context, req BadgeRequest) ([]badges.EarnedBadge, error) {
	in, _, err := s.loadInput(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.evaluator.Evaluate(in, s.evaluationInstant()), nil
}

// Award persists every newly satisfied badge for the account's owner and
// returns only those. Earlier awards are never removed.
func (s *BadgeService) Award(ctx context.Context, req BadgeRequest) ([]badges.EarnedBadge, error) {
	in, ownerID, err := s.loadInput(ctx, req)
	if err != nil {
		return nil, err
	}

	awarded, err := s.awarder.Award(ctx, ownerID, in, s.evaluationInstant())
	s.publish(ctx, ownerID, awarded)
	if err != nil {
		return awarded, fmt.Errorf("award badges: %w", err)
	}
	return awarded, nil
}

// ListAwards returns the user's persisted awards, oldest first.
func (s *BadgeService) ListAwards(ctx context.Context, userID uuid.UUID) ([]AwardedBadge, error) {
	user, err := s.storage.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	rows, err := s.storage.Badges.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}

	catalog := s.evaluator.Catalog()
	awards := make([]AwardedBadge, len(rows))
	for i, row := range rows {
		awards[i] = AwardedBadge{
			BadgeID:     badges.BadgeID(row.BadgeID),
			DisplayName: row.DisplayName,
			Description: row.Description,
			EarnedAt:    row.EarnedAt,
		}
		if def, ok := catalog.Lookup(awards[i].BadgeID); ok {
			awards[i].Legacy = def.Legacy
		}
	}
	return awards, nil
}

// evaluationInstant is sampled once per pass, in the configured zone.
func (s *BadgeService) evaluationInstant() time.Time {
	return s.now().In(s.location)
}

func (s *BadgeService) loadInput(ctx context.Context, req BadgeRequest) (badges.Input, uuid.UUID, error) {
	account, err := s.storage.Accounts.FindByID(ctx, req.AccountID, false)
	if err != nil {
		return badges.Input{}, uuid.Nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return badges.Input{}, uuid.Nil, ErrAccountNotFound
	}

	in := badges.Input{
		Account: &badges.Account{
			ID:             account.ID,
			OwnerID:        account.UserID,
			CurrentBalance: account.Balance,
		},
		Flags: req.Flags,
	}

	user, err := s.storage.Users.FindByID(ctx, account.UserID)
	if err != nil {
		return badges.Input{}, uuid.Nil, fmt.Errorf("find user: %w", err)
	}
	if user != nil {
		in.User = &badges.User{ID: user.ID, AccountCreatedAt: user.CreatedAt}
	}

	txs, err := recentTransactions(ctx, s.storage, account.ID, s.historyLimit)
	if err != nil {
		return badges.Input{}, uuid.Nil, err
	}
	in.Transactions = make([]badges.Transaction, len(txs))
	for i, tx := range txs {
		in.Transactions[i] = tx.badgeTransaction()
	}

	return in, account.UserID, nil
}

func (s *BadgeService) publish(ctx context.Context, userID uuid.UUID, awarded []badges.EarnedBadge) {
	if s.publisher == nil {
		return
	}
	for _, badge := range awarded {
		event, err := events.NewBadgeAwarded(userID, badge)
		if err == nil {
			err = s.publisher.PublishBadgeAwarded(ctx, event)
		}
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"userID":  userID.String(),
				"badgeID": badge.BadgeID,
			}).Warn("BadgeService.publish.failed")
		}
	}
}
