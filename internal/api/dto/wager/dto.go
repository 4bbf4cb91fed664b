package wager

import "time"

type StartWagerRequest struct {
	Game   string         `json:"game"`             // mines, dice, blackjack, plinko, cases
	Bet    int64          `json:"bet"`              // Bet amount (positive integer)
	Params map[string]any `json:"params,omitempty"` // Game parameters: target, mines, tier, case...
}

type ActionRequest struct {
	Action string `json:"action"` // reveal, cashout, hit, stand, double
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

type WagerResponse struct {
	ID        string          `json:"id"`
	Game      string          `json:"game"`
	Bet       int64           `json:"bet"`
	Stake     int64           `json:"stake"`
	Status    string          `json:"status"`
	StartedAt time.Time       `json:"started_at"`
	State     any             `json:"state"`             // Game view
	Payout    *PayoutResponse `json:"payout,omitempty"`  // Present once resolved
	Actions   []ActionLog     `json:"actions"`           // Append-only log
	Balance   *int64          `json:"balance,omitempty"` // Balance after settlement
}

type PayoutResponse struct {
	Multiplier float64 `json:"multiplier"`
	Amount     int64   `json:"amount"`
	NetProfit  int64   `json:"net_profit"`
}

type ActionLog struct {
	Seq    int       `json:"seq"`
	Action string    `json:"action"`
	Row    int       `json:"row"`
	Col    int       `json:"col"`
	At     time.Time `json:"at"`
}

type DepositRequest struct {
	Amount int64 `json:"amount"` // Deposit amount
}

type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

type AccountResponse struct {
	PlayerID    int   `json:"player_id"`
	Balance     int64 `json:"balance"`
	TotalProfit int64 `json:"total_profit"`
	BiggestWin  int64 `json:"biggest_win"`
	TotalGames  int   `json:"total_games"`
}

type GameStatsResponse struct {
	Game        string             `json:"game"`
	TotalWagers int                `json:"total_wagers"`
	TotalBet    int64              `json:"total_bet"`
	TotalPayout int64              `json:"total_payout"`
	RTP         float64            `json:"rtp"`
	TargetRTP   float64            `json:"target_rtp"`
	WindowRTP   float64            `json:"window_rtp"`
	WindowSize  int                `json:"window_size"`
	Drift       string             `json:"drift,omitempty"` // high, low
	Alerts      []RTPAlertResponse `json:"alerts"`
}

type RTPAlertResponse struct {
	At        time.Time `json:"at"`
	Direction string    `json:"direction"`
	WindowRTP float64   `json:"window_rtp"`
	Profit    int64     `json:"profit"`
}
