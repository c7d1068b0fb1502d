package badges

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryAwardStore keys awards by (user, badge id) so repeated writes collapse.
type memoryAwardStore struct {
	mu      sync.Mutex
	awards  map[uuid.UUID]map[BadgeID]EarnedBadge
	saves   int
	failOn  BadgeID
	loadErr error
}

func newMemoryAwardStore() *memoryAwardStore {
	return &memoryAwardStore{awards: make(map[uuid.UUID]map[BadgeID]EarnedBadge)}
}

func (s *memoryAwardStore) AwardedBadgeIDs(_ context.Context, userID uuid.UUID) ([]BadgeID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	var ids []BadgeID
	for id := range s.awards[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *memoryAwardStore) SaveAward(_ context.Context, userID uuid.UUID, badge EarnedBadge) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if badge.BadgeID == s.failOn {
		return false, errors.New("write failed")
	}
	if s.awards[userID] == nil {
		s.awards[userID] = make(map[BadgeID]EarnedBadge)
	}
	s.saves++
	if _, ok := s.awards[userID][badge.BadgeID]; ok {
		return false, nil
	}
	s.awards[userID][badge.BadgeID] = badge
	return true, nil
}

// lockstepAwardStore holds every reader until all of them have loaded the
// persisted set, so each pass sees the same snapshot before any write.
type lockstepAwardStore struct {
	*memoryAwardStore
	loaded sync.WaitGroup
}

func newLockstepAwardStore(readers int) *lockstepAwardStore {
	s := &lockstepAwardStore{memoryAwardStore: newMemoryAwardStore()}
	s.loaded.Add(readers)
	return s
}

func (s *lockstepAwardStore) AwardedBadgeIDs(ctx context.Context, userID uuid.UUID) ([]BadgeID, error) {
	ids, err := s.memoryAwardStore.AwardedBadgeIDs(ctx, userID)
	s.loaded.Done()
	s.loaded.Wait()
	return ids, err
}

func (s *memoryAwardStore) snapshot(userID uuid.UUID) map[BadgeID]EarnedBadge {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[BadgeID]EarnedBadge, len(s.awards[userID]))
	for k, v := range s.awards[userID] {
		out[k] = v
	}
	return out
}

func newTestAwarder(t *testing.T, store AwardStore) *Awarder {
	t.Helper()
	return NewAwarder(newTestEvaluator(t), store)
}

func TestAward_PersistsNewlyEarned(t *testing.T) {
	store := newMemoryAwardStore()
	userID := uuid.Must(uuid.NewV4())

	awarded, err := newTestAwarder(t, store).Award(context.Background(), userID, richInput(), testNow)

	require.NoError(t, err)
	assert.Len(t, awarded, 10)
	assert.Len(t, store.snapshot(userID), 10)
}

func TestAward_Idempotent(t *testing.T) {
	store := newMemoryAwardStore()
	awarder := newTestAwarder(t, store)
	userID := uuid.Must(uuid.NewV4())
	in := richInput()

	_, err := awarder.Award(context.Background(), userID, in, testNow)
	require.NoError(t, err)
	first := store.snapshot(userID)
	savesAfterFirst := store.saves

	again, err := awarder.Award(context.Background(), userID, in, testNow.Add(time.Hour))
	require.NoError(t, err)

	assert.Empty(t, again)
	assert.Equal(t, savesAfterFirst, store.saves, "no writes on the second pass")
	assert.Equal(t, first, store.snapshot(userID))
}

func TestAward_Monotonic(t *testing.T) {
	store := newMemoryAwardStore()
	awarder := newTestAwarder(t, store)
	userID := uuid.Must(uuid.NewV4())

	in := Input{
		Transactions: []Transaction{deposit("20000", march(1, 10))},
		Account:      &Account{CurrentBalance: decimal.NewFromInt(20000)},
	}
	awarded, err := awarder.Award(context.Background(), userID, in, testNow)
	require.NoError(t, err)
	assert.Contains(t, earnedIDs(awarded), BadgeGoldSaver)

	in.Transactions = append(in.Transactions, withdrawal("15000", testNow.Add(-time.Hour)))
	in.Account.CurrentBalance = decimal.NewFromInt(5000)
	awarded, err = awarder.Award(context.Background(), userID, in, testNow)
	require.NoError(t, err)

	assert.Empty(t, awarded)
	assert.Contains(t, store.snapshot(userID), BadgeGoldSaver, "award survives a balance drop")
	assert.Contains(t, store.snapshot(userID), BadgeZeroDebt, "award survives a recent withdrawal")
}

func TestAward_SkipsAlreadyPersisted(t *testing.T) {
	store := newMemoryAwardStore()
	userID := uuid.Must(uuid.NewV4())
	previous := EarnedBadge{BadgeID: BadgeGoldSaver, DisplayName: "Gold Saver", EarnedAt: testNow.AddDate(-1, 0, 0)}
	inserted, err := store.SaveAward(context.Background(), userID, previous)
	require.NoError(t, err)
	require.True(t, inserted)

	awarded, err := newTestAwarder(t, store).Award(context.Background(), userID, richInput(), testNow)

	require.NoError(t, err)
	assert.NotContains(t, earnedIDs(awarded), BadgeGoldSaver)
	assert.Equal(t, previous, store.snapshot(userID)[BadgeGoldSaver], "original award untouched")
}

func TestAward_NilAccount(t *testing.T) {
	store := newMemoryAwardStore()
	in := richInput()
	in.Account = nil

	awarded, err := newTestAwarder(t, store).Award(context.Background(), uuid.Must(uuid.NewV4()), in, testNow)

	assert.NoError(t, err)
	assert.Empty(t, awarded)
	assert.Zero(t, store.saves)
}

func TestAward_LoadError(t *testing.T) {
	store := newMemoryAwardStore()
	store.loadErr = errors.New("database unavailable")

	awarded, err := newTestAwarder(t, store).Award(context.Background(), uuid.Must(uuid.NewV4()), richInput(), testNow)

	assert.ErrorIs(t, err, store.loadErr)
	assert.Nil(t, awarded)
}

func TestAward_SaveErrorReturnsPartial(t *testing.T) {
	store := newMemoryAwardStore()
	store.failOn = BadgeZeroDebt
	userID := uuid.Must(uuid.NewV4())

	awarded, err := newTestAwarder(t, store).Award(context.Background(), userID, richInput(), testNow)

	assert.Error(t, err)
	assert.Equal(t, []BadgeID{BadgeGoldSaver, BadgeMilestone100}, earnedIDs(awarded))
}

func TestAward_ConcurrentPassesDoNotDuplicate(t *testing.T) {
	store := newMemoryAwardStore()
	awarder := newTestAwarder(t, store)
	userID := uuid.Must(uuid.NewV4())

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			awarded, err := awarder.Award(context.Background(), userID, richInput(), testNow)
			assert.NoError(t, err)
			mu.Lock()
			total += len(awarded)
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, store.snapshot(userID), 10)
	assert.Equal(t, 10, total, "each badge reported by exactly one pass")
}

func TestAward_RacingPassesReportEachBadgeOnce(t *testing.T) {
	store := newLockstepAwardStore(2)
	awarder := newTestAwarder(t, store)
	userID := uuid.Must(uuid.NewV4())

	results := make([][]EarnedBadge, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			awarded, err := awarder.Award(context.Background(), userID, richInput(), testNow)
			assert.NoError(t, err)
			results[i] = awarded
		}(i)
	}
	wg.Wait()

	reported := map[BadgeID]int{}
	for _, awarded := range results {
		for _, badge := range awarded {
			reported[badge.BadgeID]++
		}
	}
	assert.Len(t, store.snapshot(userID), 10)
	assert.Len(t, reported, 10)
	for id, n := range reported {
		assert.Equal(t, 1, n, "badge %s reported more than once", id)
	}
	assert.Equal(t, 20, store.saves, "both passes attempted every write")
}
