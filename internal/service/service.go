package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/claritybank/badge-server/internal/badges"
	"github.com/claritybank/badge-server/internal/events"
	"github.com/claritybank/badge-server/internal/operator/actions"
	"github.com/claritybank/badge-server/internal/storage"
	"github.com/claritybank/badge-server/internal/summary"
)

// ActionProcessor runs write actions, one transaction each.
type ActionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Options carries the collaborators and settings shared by the services.
type Options struct {
	Evaluator  *badges.Evaluator
	Summarizer summary.Summarizer
	// Publisher may be nil, in which case awards are not announced.
	Publisher events.Publisher
	Logger    *logrus.Logger

	// Location is the zone calendar days and hours are judged in.
	Location *time.Location
	// HistoryLimit caps how many recent transactions feed a badge pass.
	HistoryLimit int
	Now          func() time.Time
}

// Service holds all business logic services.
type Service struct {
	User        *UserService
	Account     *AccountService
	Transaction *TransactionService
	Badge       *BadgeService
	Summary     *SummaryService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage, processor ActionProcessor, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.HistoryLimit < 1 {
		opts.HistoryLimit = defaultHistoryLimit
	}
	if opts.Summarizer == nil {
		opts.Summarizer = summary.Unavailable{}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	return &Service{
		User:        NewUserService(store),
		Account:     NewAccountService(store, processor, opts.Now),
		Transaction: NewTransactionService(store, opts.Now),
		Badge:       NewBadgeService(store, opts),
		Summary:     NewSummaryService(store, opts),
	}
}
