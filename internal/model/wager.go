package model

import (
	"time"

	"github.com/google/uuid"
)

type GameKind string

const (
	GameMines     GameKind = "mines"
	GameDice      GameKind = "dice"
	GameBlackjack GameKind = "blackjack"
	GamePlinko    GameKind = "plinko"
	GameCases     GameKind = "cases"
)

// WagerStatus moves open -> resolved -> settled, never backward. An open
// wager found after a restart is voided and its stake refunded.
type WagerStatus string

const (
	WagerOpen     WagerStatus = "open"
	WagerResolved WagerStatus = "resolved"
	WagerSettled  WagerStatus = "settled"
	WagerVoid     WagerStatus = "void"
)

type Wager struct {
	ID        uuid.UUID
	PlayerID  int
	Game      GameKind
	Bet       int64
	Stake     int64 // Bet, or the raised amount after a double-down
	StartedAt time.Time
	Status    WagerStatus
}

type PayoutResult struct {
	Multiplier float64
	Amount     int64
	NetProfit  int64
}

type Action struct {
	Type string
	Row  int
	Col  int
}

type ActionLog struct {
	Seq    int
	Action Action
	At     time.Time
}

// Snapshot is what the boundary hands back after every call
type Snapshot struct {
	Wager   Wager
	State   any
	Payout  *PayoutResult
	Actions []ActionLog
	Balance *int64
}

// Settlement is published once the ledger commit went through
type Settlement struct {
	Wager     Wager
	Payout    PayoutResult
	State     any
	Actions   []ActionLog
	Balance   int64
	SettledAt time.Time
}

type Account struct {
	PlayerID int
	Balance  int64
	Profit   PlayerStats
}

type PlayerStats struct {
	TotalProfit int64
	BiggestWin  int64
	TotalGames  int
}

type GameStats struct {
	Game        GameKind
	TotalWagers int
	TotalBet    int64
	TotalPayout int64
	RTP         float64 // percent, over all wagers
	TargetRTP   float64
	WindowRTP   float64 // percent, over the last WindowSize wagers
	WindowSize  int
	Drift       string // "high" or "low" while the window is off target, empty otherwise
	Alerts      []RTPAlert
}

// RTPAlert is raised once each time the window RTP leaves the critical band
type RTPAlert struct {
	At        time.Time
	Direction string
	WindowRTP float64
	Profit    int64 // house profit at the moment of the alert
}
