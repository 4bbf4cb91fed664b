package wager

import (
	"context"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"wager_engine/internal/games"
	"wager_engine/internal/model"
	"wager_engine/internal/repository"
	"wager_engine/internal/rng"
	"wager_engine/internal/service"

	"github.com/google/uuid"
)

// TxManager runs fn in one transaction, trm.Manager satisfies it
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// SourceFactory hands every new wager its own randomness stream
type SourceFactory func(w model.Wager) rng.Source

// CryptoSources - production randomness
func CryptoSources() SourceFactory {
	return func(model.Wager) rng.Source {
		return rng.NewCrypto()
	}
}

// SeededSources - replayable randomness: client seed is the player id,
// the nonce counts wagers since start-up
func SeededSources(serverSeed string) SourceFactory {
	var nonce atomic.Uint64
	log.Printf("WARNING: seeded RNG is active, outcomes are reproducible from ENGINE_SEED")
	return func(w model.Wager) rng.Source {
		return rng.NewSeeded(serverSeed, strconv.Itoa(w.PlayerID), nonce.Add(1))
	}
}

// openWager - a wager between start and settlement, owned by the service
type openWager struct {
	wager   model.Wager
	game    games.Game
	state   games.State
	src     rng.Source
	actions []model.ActionLog
	payout  *model.PayoutResult
}

type serv struct {
	games     map[model.GameKind]games.Game
	ledger    repository.LedgerRepository
	archive   repository.WagerRepository
	stats     repository.StatsRepository
	txManager TxManager
	sources   SourceFactory

	mtx      sync.Mutex
	locks    map[int]*sync.Mutex
	open     map[uuid.UUID]*openWager
	byPlayer map[int]uuid.UUID
}

// NewWagerService - session orchestrator over the game catalog
func NewWagerService(
	catalog map[model.GameKind]games.Game,
	ledger repository.LedgerRepository,
	archive repository.WagerRepository,
	stats repository.StatsRepository,
	txManager TxManager,
	sources SourceFactory,
) service.WagerService {
	return &serv{
		games:     catalog,
		ledger:    ledger,
		archive:   archive,
		stats:     stats,
		txManager: txManager,
		sources:   sources,
		locks:     make(map[int]*sync.Mutex),
		open:      make(map[uuid.UUID]*openWager),
		byPlayer:  make(map[int]uuid.UUID),
	}
}

// lockPlayer - every call for one player runs under the player's mutex
func (s *serv) lockPlayer(playerID int) func() {
	s.mtx.Lock()
	l, ok := s.locks[playerID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[playerID] = l
	}
	s.mtx.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *serv) lookup(playerID int, wagerID uuid.UUID) (*openWager, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	w, ok := s.open[wagerID]
	if !ok || w.wager.PlayerID != playerID {
		return nil, false
	}
	return w, true
}

func (s *serv) register(w *openWager) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.open[w.wager.ID] = w
	s.byPlayer[w.wager.PlayerID] = w.wager.ID
}

func (s *serv) release(w *openWager) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.open, w.wager.ID)
	delete(s.byPlayer, w.wager.PlayerID)
}

func (s *serv) hasUnsettled(playerID int) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	_, ok := s.byPlayer[playerID]
	return ok
}

func (w *openWager) snapshot() *model.Snapshot {
	actions := make([]model.ActionLog, len(w.actions))
	copy(actions, w.actions)
	return &model.Snapshot{
		Wager:   w.wager,
		State:   w.state.View(),
		Payout:  w.payout,
		Actions: actions,
	}
}
