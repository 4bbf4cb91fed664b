package model

import "time"

// GameState - running totals of one game
type GameState struct {
	TotalWagers int
	TotalBet    int64
	TotalPayout int64

	CurrentRTP float64 // TotalPayout/TotalBet*100
	TargetRTP  float64

	Alerts []DriftAlert

	// drift mode is on while the window RTP is far off the target
	DriftMode      bool
	DriftDirection string // "high" or "low"

	Window     []WagerResult
	WindowRTP  float64
	WindowSize int
}

type DriftAlert struct {
	Timestamp time.Time
	Direction string
	WindowRTP float64
	Profit    int64
}

type WagerResult struct {
	Bet    int64
	Payout int64
}

// PlayerState - profit tracker of one player
type PlayerState struct {
	TotalProfit int64
	BiggestWin  int64
	TotalGames  int
}
