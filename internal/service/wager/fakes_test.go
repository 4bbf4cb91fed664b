package wager

import (
	"context"
	"sync"
	"testing"
	"time"
	"wager_engine/internal/config/env"
	"wager_engine/internal/games"
	"wager_engine/internal/model"
	"wager_engine/internal/repository/stats_repo"
	"wager_engine/internal/rng"

	"github.com/google/uuid"
)

type fakeLedger struct {
	mtx        sync.Mutex
	balances   map[int]int64
	debits     int
	credits    int
	failCredit error
	debitFloor int64 // balance a debit may not cross, drains the account at debit time
}

func newFakeLedger(balances map[int]int64) *fakeLedger {
	return &fakeLedger{balances: balances}
}

func (l *fakeLedger) GetBalance(_ context.Context, playerID int) (int64, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.balances[playerID], nil
}

func (l *fakeLedger) Debit(_ context.Context, playerID int, amount int64) (int64, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.balances[playerID]-amount < l.debitFloor {
		return 0, model.ErrInsufficientFunds
	}
	l.debits++
	l.balances[playerID] -= amount
	return l.balances[playerID], nil
}

func (l *fakeLedger) Credit(_ context.Context, playerID int, amount int64) (int64, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.failCredit != nil {
		return 0, l.failCredit
	}
	l.credits++
	l.balances[playerID] += amount
	return l.balances[playerID], nil
}

func (l *fakeLedger) Deposit(ctx context.Context, playerID int, amount int64) (int64, error) {
	return l.Credit(ctx, playerID, amount)
}

func (l *fakeLedger) set(playerID int, balance int64) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.balances[playerID] = balance
}

func (l *fakeLedger) balance(playerID int) int64 {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.balances[playerID]
}

type ledgerCopy struct {
	balances map[int]int64
	debits   int
	credits  int
}

func (l *fakeLedger) save() ledgerCopy {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	cp := ledgerCopy{balances: make(map[int]int64, len(l.balances)), debits: l.debits, credits: l.credits}
	for k, v := range l.balances {
		cp.balances[k] = v
	}
	return cp
}

func (l *fakeLedger) restore(cp ledgerCopy) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.balances, l.debits, l.credits = cp.balances, cp.debits, cp.credits
}

type fakeArchive struct {
	mtx      sync.Mutex
	open     map[uuid.UUID]model.Wager
	records  map[uuid.UUID]*model.Settlement
	failSave error
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{
		open:    make(map[uuid.UUID]model.Wager),
		records: make(map[uuid.UUID]*model.Settlement),
	}
}

func (a *fakeArchive) SaveOpen(_ context.Context, w model.Wager) error {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	a.open[w.ID] = w
	return nil
}

func (a *fakeArchive) ListOpen(context.Context) ([]model.Wager, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	open := make([]model.Wager, 0, len(a.open))
	for _, w := range a.open {
		open = append(open, w)
	}
	return open, nil
}

func (a *fakeArchive) VoidOpen(_ context.Context, id uuid.UUID, balance int64) error {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	w, ok := a.open[id]
	if !ok {
		return model.ErrWagerNotFound
	}
	delete(a.open, id)
	w.Status = model.WagerVoid
	a.records[id] = &model.Settlement{
		Wager:     w,
		Payout:    model.PayoutResult{Multiplier: 1, Amount: w.Stake},
		Balance:   balance,
		SettledAt: time.Now(),
	}
	return nil
}

func (a *fakeArchive) SaveSettlement(_ context.Context, s *model.Settlement) error {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	if a.failSave != nil {
		return a.failSave
	}
	delete(a.open, s.Wager.ID)
	a.records[s.Wager.ID] = s
	return nil
}

func (a *fakeArchive) GetSettlement(_ context.Context, id uuid.UUID) (*model.Settlement, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	s, ok := a.records[id]
	if !ok {
		return nil, model.ErrWagerNotFound
	}
	return s, nil
}

func (a *fakeArchive) len() int {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	return len(a.records)
}

func (a *fakeArchive) openCount() int {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	return len(a.open)
}

func (a *fakeArchive) save() (map[uuid.UUID]model.Wager, map[uuid.UUID]*model.Settlement) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	open := make(map[uuid.UUID]model.Wager, len(a.open))
	for k, v := range a.open {
		open[k] = v
	}
	records := make(map[uuid.UUID]*model.Settlement, len(a.records))
	for k, v := range a.records {
		records[k] = v
	}
	return open, records
}

func (a *fakeArchive) restore(open map[uuid.UUID]model.Wager, records map[uuid.UUID]*model.Settlement) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	a.open, a.records = open, records
}

// fakeTx rolls the ledger and the archive back when fn fails
type fakeTx struct {
	ledger  *fakeLedger
	archive *fakeArchive
}

func (tx *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	saved := tx.ledger.save()
	open, records := tx.archive.save()

	if err := fn(ctx); err != nil {
		tx.ledger.restore(saved)
		tx.archive.restore(open, records)
		return err
	}
	return nil
}

// scriptedSource replays fixed draws, IntN(n) without a script returns n-1,
// which leaves a Fisher-Yates shuffle in deck order
type scriptedSource struct {
	mtx    sync.Mutex
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() (float64, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if len(s.floats) == 0 {
		return 0.5, nil
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f, nil
}

func (s *scriptedSource) IntN(n int) (int, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if len(s.ints) == 0 {
		return n - 1, nil
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v, nil
}

type brokenSource struct{}

func (brokenSource) Float64() (float64, error) { return 0, rng.ErrUnavailable }
func (brokenSource) IntN(int) (int, error)     { return 0, rng.ErrUnavailable }

type fixture struct {
	serv    *serv
	ledger  *fakeLedger
	archive *fakeArchive
	stats   *stats_repo.StateRepo
	src     rng.Source
}

func newFixture(t *testing.T, balance int64) *fixture {
	t.Helper()
	f := &fixture{
		ledger:  newFakeLedger(map[int]int64{1: balance, 2: balance}),
		archive: newFakeArchive(),
		stats:   stats_repo.NewStatsRepository(100, 97),
		src:     &scriptedSource{},
	}
	f.serv = f.restart(t)
	return f
}

// restart - a fresh service over the same ledger and archive, as after a
// process restart
func (f *fixture) restart(t *testing.T) *serv {
	t.Helper()
	catalog, err := games.NewCatalog(env.DefaultGamesConfig())
	if err != nil {
		t.Fatal(err)
	}
	return NewWagerService(
		catalog,
		f.ledger,
		f.archive,
		f.stats,
		&fakeTx{ledger: f.ledger, archive: f.archive},
		func(model.Wager) rng.Source { return f.src },
	).(*serv)
}
