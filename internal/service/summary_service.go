package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/claritybank/badge-server/internal/badges"
	"github.com/claritybank/badge-server/internal/storage"
	"github.com/claritybank/badge-server/internal/summary"
)

// summaryTransactions is how many recent transactions the model is shown.
const summaryTransactions = 50

// SummaryService produces the natural-language activity summary.
type SummaryService struct {
	storage    *storage.Storage
	summarizer summary.Summarizer
	location   *time.Location
}

func NewSummaryService(store *storage.Storage, opts Options) *SummaryService {
	return &SummaryService{
		storage:    store,
		summarizer: opts.Summarizer,
		location:   opts.Location,
	}
}

func (s *SummaryService) Summarize(ctx context.Context, accountID uuid.UUID) (string, error) {
	account, err := s.storage.Accounts.FindByID(ctx, accountID, false)
	if err != nil {
		return "", fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return "", ErrAccountNotFound
	}

	txs, err := recentTransactions(ctx, s.storage, accountID, summaryTransactions)
	if err != nil {
		return "", err
	}

	projected := make([]badges.Transaction, len(txs))
	for i, tx := range txs {
		projected[i] = tx.badgeTransaction()
	}

	return s.summarizer.Summarize(ctx, summary.Project(projected, s.location))
}
