package wager

import (
	"context"
	"fmt"
	"time"
	"wager_engine/internal/games"
	"wager_engine/internal/model"

	"github.com/google/uuid"
)

// Act - one player action on an open wager. A rejected action leaves the
// wager exactly as it was.
func (s *serv) Act(ctx context.Context, playerID int, wagerID uuid.UUID, action model.Action) (*model.Snapshot, error) {
	unlock := s.lockPlayer(playerID)
	defer unlock()

	w, ok := s.lookup(playerID, wagerID)
	if !ok {
		return nil, model.ErrWagerNotFound
	}
	if w.wager.Status != model.WagerOpen {
		return nil, &model.TransitionError{State: string(w.wager.Status), Action: action.Type}
	}

	// double-down and the like must be covered before the action runs
	if raiser, ok := w.game.(games.StakeRaiser); ok {
		if raise := raiser.StakeAfter(w.state, action) - w.wager.Stake; raise > 0 {
			balance, err := s.ledger.GetBalance(ctx, playerID)
			if err != nil {
				return nil, fmt.Errorf("get balance: %w", err)
			}
			if raise > balance {
				return nil, model.NewValidationError("bet", "raise of %d exceeds balance %d", raise, balance)
			}
		}
	}

	next, err := w.game.Act(w.src, w.state, action)
	if err != nil {
		return nil, err
	}
	if raise := next.Stake() - w.wager.Stake; raise > 0 {
		raised := w.wager
		raised.Stake = next.Stake()
		if err := s.escrow(ctx, raised, raise); err != nil {
			return nil, err
		}
	}

	w.state = next
	w.wager.Stake = next.Stake()
	w.actions = append(w.actions, model.ActionLog{
		Seq:    len(w.actions) + 1,
		Action: action,
		At:     time.Now(),
	})

	if w.game.IsTerminal(next) {
		return s.resolveAndSettle(ctx, w)
	}
	return w.snapshot(), nil
}
