package service

import (
	"context"
	"wager_engine/internal/model"

	"github.com/google/uuid"
)

type WagerService interface {
	StartWager(ctx context.Context, playerID int, game model.GameKind, bet int64, params map[string]any) (*model.Snapshot, error)
	Act(ctx context.Context, playerID int, wagerID uuid.UUID, action model.Action) (*model.Snapshot, error)
	GetState(ctx context.Context, playerID int, wagerID uuid.UUID) (*model.Snapshot, error)
	Settle(ctx context.Context, playerID int, wagerID uuid.UUID) (*model.Snapshot, error)
	RecoverOpen(ctx context.Context) (int, error)
}

type AccountService interface {
	Account(ctx context.Context, playerID int) (*model.Account, error)
	Deposit(ctx context.Context, playerID int, amount int64) (int64, error)
	Transfer(ctx context.Context, from, to int, amount int64) (*model.Transfer, error)
	Transfers(ctx context.Context, playerID int, limit uint64) ([]model.Transfer, error)
	GameStats() []model.GameStats
}
