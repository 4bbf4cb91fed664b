package wager

import (
	"context"
	"log"
	"time"
	"wager_engine/internal/model"

	"github.com/google/uuid"
)

// Settle - retries the settlement of a resolved wager whose ledger commit failed
func (s *serv) Settle(ctx context.Context, playerID int, wagerID uuid.UUID) (*model.Snapshot, error) {
	unlock := s.lockPlayer(playerID)
	defer unlock()

	w, ok := s.lookup(playerID, wagerID)
	if !ok {
		archived, err := s.archive.GetSettlement(ctx, wagerID)
		if err != nil || archived.Wager.PlayerID != playerID {
			return nil, model.ErrWagerNotFound
		}
		return nil, &model.TransitionError{State: string(archived.Wager.Status), Action: "settle"}
	}
	if w.wager.Status != model.WagerResolved {
		return nil, &model.TransitionError{State: string(w.wager.Status), Action: "settle"}
	}

	return s.settle(ctx, w)
}

func (s *serv) resolveAndSettle(ctx context.Context, w *openWager) (*model.Snapshot, error) {
	payout := w.game.ComputePayout(w.state)
	w.payout = &payout
	w.wager.Status = model.WagerResolved

	return s.settle(ctx, w)
}

// settle - credit of the payout and the archive record commit together or
// not at all, the stake was escrowed when the wager started. On failure the
// wager stays resolved and keeps blocking the player until a retry goes
// through.
func (s *serv) settle(ctx context.Context, w *openWager) (*model.Snapshot, error) {
	var settlement *model.Settlement

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var (
			balance int64
			err     error
		)
		if w.payout.Amount > 0 {
			balance, err = s.ledger.Credit(txCtx, w.wager.PlayerID, w.payout.Amount)
		} else {
			balance, err = s.ledger.GetBalance(txCtx, w.wager.PlayerID)
		}
		if err != nil {
			return err
		}

		settled := w.wager
		settled.Status = model.WagerSettled
		settlement = &model.Settlement{
			Wager:     settled,
			Payout:    *w.payout,
			State:     w.state.View(),
			Actions:   w.actions,
			Balance:   balance,
			SettledAt: time.Now(),
		}
		return s.archive.SaveSettlement(txCtx, settlement)
	})
	if err != nil {
		log.Printf("settlement of wager %s failed: %v", w.wager.ID, err)
		return nil, &model.SettlementError{WagerID: w.wager.ID.String(), Err: err}
	}

	w.wager.Status = model.WagerSettled
	s.release(w)
	if s.stats != nil {
		s.stats.Record(settlement)
	}

	snap := w.snapshot()
	snap.Balance = &settlement.Balance
	return snap, nil
}
