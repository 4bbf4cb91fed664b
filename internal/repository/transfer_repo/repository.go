package transfer_repo

import (
	"context"
	"wager_engine/internal/model"
	"wager_engine/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "transfers"
	colID        = "id"
	colFrom      = "from_id"
	colTo        = "to_id"
	colAmount    = "amount"
	colCreatedAt = "created_at"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewTransferRepository(dbc *pgxpool.Pool) repository.TransferRepository {
	return &repo{
		dbc: dbc,
	}
}

// SaveTransfer - records a transfer, runs inside the transfer transaction
func (r *repo) SaveTransfer(ctx context.Context, t *model.Transfer) error {
	sqlStr, args, err := insertQuery(t).ToSql()
	if err != nil {
		return err
	}

	_, err = trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

// ListTransfers - transfers sent or received by the player, newest first
func (r *repo) ListTransfers(ctx context.Context, playerID int, limit uint64) ([]model.Transfer, error) {
	sqlStr, args, err := historyQuery(playerID, limit).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []model.Transfer
	for rows.Next() {
		var t model.Transfer
		if err := rows.Scan(&t.ID, &t.From, &t.To, &t.Amount, &t.CreatedAt); err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}

	return transfers, rows.Err()
}

func insertQuery(t *model.Transfer) sq.InsertBuilder {
	return sq.Insert(table).
		Columns(colID, colFrom, colTo, colAmount, colCreatedAt).
		Values(t.ID, t.From, t.To, t.Amount, t.CreatedAt).
		PlaceholderFormat(sq.Dollar)
}

func historyQuery(playerID int, limit uint64) sq.SelectBuilder {
	return sq.Select(colID, colFrom, colTo, colAmount, colCreatedAt).
		From(table).
		Where(sq.Or{sq.Eq{colFrom: playerID}, sq.Eq{colTo: playerID}}).
		OrderBy(colCreatedAt + " DESC").
		Limit(limit).
		PlaceholderFormat(sq.Dollar)
}
