package account

import (
	"context"
	"fmt"
	"wager_engine/internal/model"
)

// maxDeposit caps a single top up
const maxDeposit = 1_000_000

// Deposit - top up the balance, returns the new balance
func (s *serv) Deposit(ctx context.Context, playerID int, amount int64) (int64, error) {
	if amount <= 0 || amount > maxDeposit {
		return 0, model.NewValidationError("amount", "must be between 1 and %d, got %d", maxDeposit, amount)
	}

	balance, err := s.ledger.Deposit(ctx, playerID, amount)
	if err != nil {
		return 0, fmt.Errorf("deposit: %w", err)
	}

	return balance, nil
}
