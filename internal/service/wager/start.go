package wager

import (
	"context"
	"fmt"
	"time"
	"wager_engine/internal/games"
	"wager_engine/internal/model"

	"github.com/google/uuid"
)

// StartWager - validates the bet against the balance, starts the game,
// escrows the stake and settles right away when the game resolves on start
// (dice, plinko, cases, blackjack naturals). Nothing touches the ledger
// before the game started.
func (s *serv) StartWager(ctx context.Context, playerID int, kind model.GameKind, bet int64, params map[string]any) (*model.Snapshot, error) {
	game, ok := s.games[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownGame, kind)
	}
	if bet <= 0 {
		return nil, model.NewValidationError("bet", "must be positive, got %d", bet)
	}

	unlock := s.lockPlayer(playerID)
	defer unlock()

	// one unsettled wager per player, a resolved one still blocks until settled
	if s.hasUnsettled(playerID) {
		return nil, model.ErrWagerInProgress
	}

	balance, err := s.ledger.GetBalance(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	if bet > balance {
		return nil, model.NewValidationError("bet", "%d exceeds balance %d", bet, balance)
	}

	w := &openWager{
		wager: model.Wager{
			ID:        uuid.New(),
			PlayerID:  playerID,
			Game:      kind,
			Bet:       bet,
			Stake:     bet,
			StartedAt: time.Now(),
			Status:    model.WagerOpen,
		},
		game: game,
	}
	w.src = s.sources(w.wager)

	st, err := game.Start(w.src, games.Round{PlayerID: playerID, Bet: bet, Params: params})
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", kind, err)
	}
	w.state = st
	w.wager.Stake = st.Stake()

	if err := s.escrow(ctx, w.wager, w.wager.Stake); err != nil {
		return nil, err
	}
	s.register(w)

	if game.IsTerminal(st) {
		return s.resolveAndSettle(ctx, w)
	}
	return w.snapshot(), nil
}
