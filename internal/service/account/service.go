package account

import (
	"context"
	"fmt"
	"wager_engine/internal/model"
	"wager_engine/internal/repository"
	"wager_engine/internal/service"
)

// TxManager runs fn in one transaction, trm.Manager satisfies it
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serv struct {
	ledger    repository.LedgerRepository
	transfers repository.TransferRepository
	stats     repository.StatsRepository
	txManager TxManager
}

// NewAccountService - balance, transfers, profit tracker and game stats for the player
func NewAccountService(
	ledger repository.LedgerRepository,
	transfers repository.TransferRepository,
	stats repository.StatsRepository,
	txManager TxManager,
) service.AccountService {
	return &serv{
		ledger:    ledger,
		transfers: transfers,
		stats:     stats,
		txManager: txManager,
	}
}

// Account - balance with the profit tracker of the player
func (s *serv) Account(ctx context.Context, playerID int) (*model.Account, error) {
	balance, err := s.ledger.GetBalance(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}

	return &model.Account{
		PlayerID: playerID,
		Balance:  balance,
		Profit:   s.stats.PlayerStats(playerID),
	}, nil
}

func (s *serv) GameStats() []model.GameStats {
	return s.stats.GameStats()
}
