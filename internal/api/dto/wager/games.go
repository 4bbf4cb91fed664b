package wager

import "time"

type TransferRequest struct {
	To     int   `json:"to"`     // Receiving player
	Amount int64 `json:"amount"` // Transfer amount
}

type TransferResponse struct {
	ID        string    `json:"id"`
	From      int       `json:"from"`
	To        int       `json:"to"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	Balance   *int64    `json:"balance,omitempty"` // Sender balance, only on the transfer call
}

type GamesResponse struct {
	Games  []string             `json:"games"`
	Cases  []CaseResponse       `json:"cases"`
	Plinko []PlinkoTierResponse `json:"plinko_tiers"`
}

type CaseResponse struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Price int64              `json:"price"`
	Items []CaseItemResponse `json:"items"`
}

type CaseItemResponse struct {
	Name   string  `json:"name"`
	Value  int64   `json:"value"`
	Chance float64 `json:"chance"` // Percent
	Rarity string  `json:"rarity"`
}

type PlinkoTierResponse struct {
	Name        string    `json:"name"`
	Rows        int       `json:"rows"`
	Multipliers []float64 `json:"multipliers"`
	Default     bool      `json:"default"`
}
