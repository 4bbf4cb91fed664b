package wager

import (
	"context"
	"wager_engine/internal/model"

	"github.com/google/uuid"
)

// GetState - snapshot of an open or resolved wager, or of the archived one
// once settled
func (s *serv) GetState(ctx context.Context, playerID int, wagerID uuid.UUID) (*model.Snapshot, error) {
	unlock := s.lockPlayer(playerID)
	defer unlock()

	if w, ok := s.lookup(playerID, wagerID); ok {
		return w.snapshot(), nil
	}

	archived, err := s.archive.GetSettlement(ctx, wagerID)
	if err != nil {
		return nil, err
	}
	if archived.Wager.PlayerID != playerID {
		return nil, model.ErrWagerNotFound
	}

	payout := archived.Payout
	balance := archived.Balance
	return &model.Snapshot{
		Wager:   archived.Wager,
		State:   archived.State,
		Payout:  &payout,
		Actions: archived.Actions,
		Balance: &balance,
	}, nil
}
