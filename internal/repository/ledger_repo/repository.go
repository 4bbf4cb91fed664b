package ledger_repo

import (
	"context"
	"errors"
	"fmt"
	"wager_engine/internal/model"
	"wager_engine/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table      = "users"
	colID      = "id"
	colBalance = "balance"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewLedgerRepository(dbc *pgxpool.Pool) repository.LedgerRepository {
	return &repo{
		dbc: dbc,
	}
}

// GetBalance - balance of the player, 0 for an unknown player
func (r *repo) GetBalance(ctx context.Context, playerID int) (int64, error) {
	sqlStr, args, err := balanceQuery(playerID).ToSql()
	if err != nil {
		return 0, err
	}

	var balance int64
	err = trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}

	return balance, nil
}

// Debit - takes amount off the balance in one conditional update.
// Returns model.ErrInsufficientFunds when the balance does not cover it.
func (r *repo) Debit(ctx context.Context, playerID int, amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("debit of negative amount %d", amount)
	}

	sqlStr, args, err := debitQuery(playerID, amount).ToSql()
	if err != nil {
		return 0, err
	}

	var balance int64
	err = trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrInsufficientFunds
		}
		return 0, err
	}

	return balance, nil
}

// Credit - adds amount to the balance, the account row is created if missing
func (r *repo) Credit(ctx context.Context, playerID int, amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("credit of negative amount %d", amount)
	}

	sqlStr, args, err := creditQuery(playerID, amount).ToSql()
	if err != nil {
		return 0, err
	}

	var balance int64
	err = trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		return 0, err
	}

	return balance, nil
}

// Deposit - top up from outside any wager
func (r *repo) Deposit(ctx context.Context, playerID int, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, model.NewValidationError("amount", "must be positive, got %d", amount)
	}
	return r.Credit(ctx, playerID, amount)
}

func balanceQuery(playerID int) sq.SelectBuilder {
	return sq.Select(colBalance).
		From(table).
		Where(sq.Eq{colID: playerID}).
		PlaceholderFormat(sq.Dollar)
}

func debitQuery(playerID int, amount int64) sq.UpdateBuilder {
	return sq.Update(table).
		Set(colBalance, sq.Expr(colBalance+" - ?", amount)).
		Where(sq.Eq{colID: playerID}).
		Where(sq.GtOrEq{colBalance: amount}).
		Suffix("RETURNING " + colBalance).
		PlaceholderFormat(sq.Dollar)
}

func creditQuery(playerID int, amount int64) sq.InsertBuilder {
	return sq.Insert(table).
		Columns(colID, colBalance).
		Values(playerID, amount).
		Suffix("ON CONFLICT (" + colID + ") DO UPDATE SET " + colBalance + " = " + table + "." + colBalance + " + EXCLUDED." + colBalance + " RETURNING " + colBalance).
		PlaceholderFormat(sq.Dollar)
}
