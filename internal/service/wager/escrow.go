package wager

import (
	"context"
	"errors"
	"fmt"
	"log"
	"wager_engine/internal/model"
)

// escrow - debits amount and records w with its new stake in one
// transaction. The stake leaves the balance here, settlement only credits.
func (s *serv) escrow(ctx context.Context, w model.Wager, amount int64) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.ledger.Debit(txCtx, w.PlayerID, amount); err != nil {
			return err
		}
		return s.archive.SaveOpen(txCtx, w)
	})
	if errors.Is(err, model.ErrInsufficientFunds) {
		return model.NewValidationError("bet", "stake of %d exceeds balance", amount)
	}
	if err != nil {
		return fmt.Errorf("escrow stake of wager %s: %w", w.ID, err)
	}
	return nil
}

// RecoverOpen - voids every escrowed wager left over from a previous run and
// pays its stake back. Game state lives in memory only, so such a wager can
// not be played on. Returns how many wagers were voided.
func (s *serv) RecoverOpen(ctx context.Context) (int, error) {
	open, err := s.archive.ListOpen(ctx)
	if err != nil {
		return 0, fmt.Errorf("list open wagers: %w", err)
	}

	voided := 0
	for _, w := range open {
		unlock := s.lockPlayer(w.PlayerID)
		if _, live := s.lookup(w.PlayerID, w.ID); live {
			unlock()
			continue
		}

		err := s.txManager.Do(ctx, func(txCtx context.Context) error {
			balance, err := s.ledger.Credit(txCtx, w.PlayerID, w.Stake)
			if err != nil {
				return err
			}
			return s.archive.VoidOpen(txCtx, w.ID, balance)
		})
		unlock()
		if err != nil {
			return voided, fmt.Errorf("void wager %s: %w", w.ID, err)
		}

		log.Printf("voided wager %s of player %d, stake %d refunded", w.ID, w.PlayerID, w.Stake)
		voided++
	}
	return voided, nil
}
