package wager_repo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"wager_engine/internal/model"
	"wager_engine/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table         = "wagers"
	colID         = "id"
	colUserID     = "user_id"
	colGame       = "game"
	colBet        = "bet"
	colStake      = "stake"
	colStatus     = "status"
	colMultiplier = "multiplier"
	colPayout     = "payout"
	colNetProfit  = "net_profit"
	colBalance    = "balance_after"
	colState      = "state"
	colActions    = "actions"
	colStartedAt  = "started_at"
	colSettledAt  = "settled_at"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewWagerRepository(dbc *pgxpool.Pool) repository.WagerRepository {
	return &repo{
		dbc: dbc,
	}
}

type actionRecord struct {
	Seq  int       `json:"seq"`
	Type string    `json:"type"`
	Row  int       `json:"row"`
	Col  int       `json:"col"`
	At   time.Time `json:"at"`
}

// SaveOpen - writes the escrow row of an open wager, a second call for the
// same id only moves the stake (double-down)
func (r *repo) SaveOpen(ctx context.Context, w model.Wager) error {
	sqlStr, args, err := openQuery(w).ToSql()
	if err != nil {
		return err
	}

	_, err = trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

// ListOpen - wagers whose stake is escrowed but which were never settled
func (r *repo) ListOpen(ctx context.Context) ([]model.Wager, error) {
	query := sq.Select(colID, colUserID, colGame, colBet, colStake, colStartedAt).
		From(table).
		Where(sq.Eq{colStatus: string(model.WagerOpen)}).
		OrderBy(colStartedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var open []model.Wager
	for rows.Next() {
		var (
			w    model.Wager
			game string
		)
		if err := rows.Scan(&w.ID, &w.PlayerID, &game, &w.Bet, &w.Stake, &w.StartedAt); err != nil {
			return nil, err
		}
		w.Game = model.GameKind(game)
		w.Status = model.WagerOpen
		open = append(open, w)
	}
	return open, rows.Err()
}

// VoidOpen - closes an open row as void with the stake paid back
func (r *repo) VoidOpen(ctx context.Context, id uuid.UUID, balance int64) error {
	sqlStr, args, err := voidQuery(id, balance, time.Now()).ToSql()
	if err != nil {
		return err
	}

	tag, err := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrWagerNotFound
	}
	return nil
}

// SaveSettlement - archives a settled wager with its final state and action
// log over its escrow row. Runs inside the settlement transaction when ctx
// carries one.
func (r *repo) SaveSettlement(ctx context.Context, s *model.Settlement) error {
	query, err := insertQuery(s)
	if err != nil {
		return err
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

// GetSettlement - archived wager by id, model.ErrWagerNotFound if absent
func (r *repo) GetSettlement(ctx context.Context, id uuid.UUID) (*model.Settlement, error) {
	query := sq.Select(colID, colUserID, colGame, colBet, colStake, colStatus,
		colMultiplier, colPayout, colNetProfit, colBalance, colState, colActions,
		colStartedAt, colSettledAt).
		From(table).
		Where(sq.Eq{colID: id}).
		Where(sq.NotEq{colStatus: string(model.WagerOpen)}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		s           model.Settlement
		status      string
		game        string
		stateJSON   []byte
		actionsJSON []byte
	)
	err = trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(
		&s.Wager.ID, &s.Wager.PlayerID, &game, &s.Wager.Bet, &s.Wager.Stake, &status,
		&s.Payout.Multiplier, &s.Payout.Amount, &s.Payout.NetProfit, &s.Balance,
		&stateJSON, &actionsJSON, &s.Wager.StartedAt, &s.SettledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrWagerNotFound
		}
		return nil, err
	}
	s.Wager.Game = model.GameKind(game)
	s.Wager.Status = model.WagerStatus(status)
	s.State = json.RawMessage(stateJSON)

	actions, err := decodeActions(actionsJSON)
	if err != nil {
		return nil, err
	}
	s.Actions = actions

	return &s, nil
}

func insertQuery(s *model.Settlement) (sq.InsertBuilder, error) {
	stateJSON, err := json.Marshal(s.State)
	if err != nil {
		return sq.InsertBuilder{}, err
	}
	actionsJSON, err := encodeActions(s.Actions)
	if err != nil {
		return sq.InsertBuilder{}, err
	}

	return sq.Insert(table).
		Columns(colID, colUserID, colGame, colBet, colStake, colStatus,
			colMultiplier, colPayout, colNetProfit, colBalance, colState, colActions,
			colStartedAt, colSettledAt).
		Values(s.Wager.ID, s.Wager.PlayerID, string(s.Wager.Game), s.Wager.Bet, s.Wager.Stake, string(s.Wager.Status),
			s.Payout.Multiplier, s.Payout.Amount, s.Payout.NetProfit, s.Balance, stateJSON, actionsJSON,
			s.Wager.StartedAt, s.SettledAt).
		Suffix("ON CONFLICT (" + colID + ") DO UPDATE SET " + excluded(colStake, colStatus,
			colMultiplier, colPayout, colNetProfit, colBalance, colState, colActions, colSettledAt)).
		PlaceholderFormat(sq.Dollar), nil
}

func openQuery(w model.Wager) sq.InsertBuilder {
	return sq.Insert(table).
		Columns(colID, colUserID, colGame, colBet, colStake, colStatus, colStartedAt).
		Values(w.ID, w.PlayerID, string(w.Game), w.Bet, w.Stake, string(model.WagerOpen), w.StartedAt).
		Suffix("ON CONFLICT (" + colID + ") DO UPDATE SET " + excluded(colStake)).
		PlaceholderFormat(sq.Dollar)
}

func voidQuery(id uuid.UUID, balance int64, at time.Time) sq.UpdateBuilder {
	return sq.Update(table).
		Set(colStatus, string(model.WagerVoid)).
		Set(colMultiplier, 1.0).
		Set(colPayout, sq.Expr(colStake)).
		Set(colNetProfit, int64(0)).
		Set(colBalance, balance).
		Set(colSettledAt, at).
		Where(sq.Eq{colID: id, colStatus: string(model.WagerOpen)}).
		PlaceholderFormat(sq.Dollar)
}

func excluded(cols ...string) string {
	set := make([]string, len(cols))
	for i, c := range cols {
		set[i] = c + " = EXCLUDED." + c
	}
	return strings.Join(set, ", ")
}

func encodeActions(log []model.ActionLog) ([]byte, error) {
	records := make([]actionRecord, len(log))
	for i, l := range log {
		records[i] = actionRecord{Seq: l.Seq, Type: l.Action.Type, Row: l.Action.Row, Col: l.Action.Col, At: l.At}
	}
	return json.Marshal(records)
}

func decodeActions(b []byte) ([]model.ActionLog, error) {
	var records []actionRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, err
	}
	log := make([]model.ActionLog, len(records))
	for i, rec := range records {
		log[i] = model.ActionLog{
			Seq:    rec.Seq,
			Action: model.Action{Type: rec.Type, Row: rec.Row, Col: rec.Col},
			At:     rec.At,
		}
	}
	return log, nil
}
