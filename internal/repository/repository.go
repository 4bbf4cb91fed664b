package repository

import (
	"context"
	"wager_engine/internal/model"

	"github.com/google/uuid"
)

// LedgerRepository - balance store. Every call is atomic on its own,
// settlement groups them through the transaction in ctx.
type LedgerRepository interface {
	GetBalance(ctx context.Context, playerID int) (int64, error)
	Debit(ctx context.Context, playerID int, amount int64) (int64, error)
	Credit(ctx context.Context, playerID int, amount int64) (int64, error)
	Deposit(ctx context.Context, playerID int, amount int64) (int64, error)
}

// WagerRepository - wager rows from escrow to archive. SaveOpen records
// the escrowed stake, SaveSettlement closes the same row.
type WagerRepository interface {
	SaveOpen(ctx context.Context, w model.Wager) error
	ListOpen(ctx context.Context) ([]model.Wager, error)
	VoidOpen(ctx context.Context, id uuid.UUID, balance int64) error
	SaveSettlement(ctx context.Context, s *model.Settlement) error
	GetSettlement(ctx context.Context, id uuid.UUID) (*model.Settlement, error)
}

// TransferRepository - history of player to player transfers, newest first
type TransferRepository interface {
	SaveTransfer(ctx context.Context, t *model.Transfer) error
	ListTransfers(ctx context.Context, playerID int, limit uint64) ([]model.Transfer, error)
}

// StatsRepository is fed by settlement events only
type StatsRepository interface {
	Record(s *model.Settlement)
	GameStats() []model.GameStats
	PlayerStats(playerID int) model.PlayerStats
}
