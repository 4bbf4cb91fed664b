package games

import (
	"fmt"
	"math"
	"wager_engine/internal/config"
	"wager_engine/internal/model"
	"wager_engine/internal/rng"
)

// Action types understood by the games
const (
	ActionReveal  = "reveal"
	ActionCashout = "cashout"
	ActionHit     = "hit"
	ActionStand   = "stand"
	ActionDouble  = "double"
)

// Round carries what a game needs to start a wager.
type Round struct {
	PlayerID int
	Bet      int64
	Params   map[string]any
}

// State is an immutable game state. Act never modifies the state it is
// given, it returns a new one.
type State interface {
	// Phase names the current state machine state
	Phase() string
	// Stake is the amount at risk, Bet unless the game raised it
	Stake() int64
	// View is the JSON friendly projection handed to the player
	View() any
}

// Game is the strategy each variant implements. The orchestrator only
// talks to games through this interface.
type Game interface {
	Kind() model.GameKind
	Start(src rng.Source, round Round) (State, error)
	Act(src rng.Source, st State, action model.Action) (State, error)
	IsTerminal(st State) bool
	ComputePayout(st State) model.PayoutResult
}

// StakeRaiser is implemented by games where an action raises the stake
// (blackjack double-down). The orchestrator checks the balance before
// running such an action.
type StakeRaiser interface {
	StakeAfter(st State, action model.Action) int64
}

// NewCatalog builds every game from config.
func NewCatalog(cfg config.GamesConfig) (map[model.GameKind]Game, error) {
	mines, err := NewMines(cfg.Mines())
	if err != nil {
		return nil, err
	}
	dice, err := NewDice(cfg.Dice())
	if err != nil {
		return nil, err
	}
	blackjack, err := NewBlackjack(cfg.Blackjack())
	if err != nil {
		return nil, err
	}
	plinko, err := NewPlinko(cfg.Plinko())
	if err != nil {
		return nil, err
	}
	cases, err := NewCases(cfg.Cases())
	if err != nil {
		return nil, err
	}

	return map[model.GameKind]Game{
		model.GameMines:     mines,
		model.GameDice:      dice,
		model.GameBlackjack: blackjack,
		model.GamePlinko:    plinko,
		model.GameCases:     cases,
	}, nil
}

func wrongState(st State) error {
	return fmt.Errorf("unexpected state type %T", st)
}

// paramInt reads an integer param. JSON numbers arrive as float64.
func paramInt(params map[string]any, key string, def int) (int, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return def, nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, model.NewValidationError(key, "must be an integer, got %v", v)
		}
		return int(v), nil
	default:
		return 0, model.NewValidationError(key, "must be a number, got %T", raw)
	}
}

func paramFloat(params map[string]any, key string) (float64, bool, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, true, nil
	case int:
		return float64(v), true, nil
	case int64:
		return float64(v), true, nil
	default:
		return 0, false, model.NewValidationError(key, "must be a number, got %T", raw)
	}
}

func paramString(params map[string]any, key, def string) (string, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", model.NewValidationError(key, "must be a string, got %T", raw)
	}
	return s, nil
}
