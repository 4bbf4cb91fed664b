package account

import (
	"context"
	"fmt"
	"time"
	"wager_engine/internal/model"

	"github.com/google/uuid"
)

const (
	// maxTransfer caps a single transfer
	maxTransfer = 1_000_000

	defaultHistory = 20
	maxHistory     = 100
)

// Transfer - moves amount from one player to another. Debit, credit and the
// history record commit together or not at all.
func (s *serv) Transfer(ctx context.Context, from, to int, amount int64) (*model.Transfer, error) {
	if to <= 0 {
		return nil, model.NewValidationError("to", "unknown player %d", to)
	}
	if from == to {
		return nil, model.NewValidationError("to", "can not transfer to yourself")
	}
	if amount <= 0 || amount > maxTransfer {
		return nil, model.NewValidationError("amount", "must be between 1 and %d, got %d", maxTransfer, amount)
	}

	t := &model.Transfer{
		ID:        uuid.New(),
		From:      from,
		To:        to,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		balance, err := s.ledger.Debit(txCtx, from, amount)
		if err != nil {
			return err
		}
		if _, err := s.ledger.Credit(txCtx, to, amount); err != nil {
			return err
		}
		t.Balance = balance
		return s.transfers.SaveTransfer(txCtx, t)
	})
	if err != nil {
		return nil, fmt.Errorf("transfer: %w", err)
	}

	return t, nil
}

// Transfers - sent and received transfers of the player, newest first.
// limit 0 means the default page.
func (s *serv) Transfers(ctx context.Context, playerID int, limit uint64) ([]model.Transfer, error) {
	if limit == 0 {
		limit = defaultHistory
	}
	if limit > maxHistory {
		limit = maxHistory
	}

	transfers, err := s.transfers.ListTransfers(ctx, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}

	return transfers, nil
}
