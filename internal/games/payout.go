package games

import (
	"math"
	"wager_engine/internal/model"

	"github.com/shopspring/decimal"
)

// MinesMultiplier - compounded fair odds times house edge after `revealed`
// safe reveals. Survival odds change per step because cells are removed
// without replacement, so every step is computed separately.
func MinesMultiplier(total, mines, revealed int, houseEdge float64) float64 {
	safe := total - mines
	m := 1.0
	for i := 1; i <= revealed; i++ {
		totalRemaining := float64(total - (i - 1))
		safeRemaining := float64(safe - (i - 1))
		m *= totalRemaining / safeRemaining * houseEdge
	}
	return math.Max(1.0, m)
}

// DiceMultiplier - payout pool (99) over the win chance in percent
func DiceMultiplier(payoutPool, target float64) float64 {
	return payoutPool / target
}

// FloorPayout - floor(stake × multiplier) in exact decimal arithmetic.
// Fractions always go to the house.
func FloorPayout(stake int64, multiplier float64) int64 {
	if stake <= 0 || multiplier <= 0 {
		return 0
	}
	return decimal.NewFromInt(stake).
		Mul(decimal.NewFromFloat(multiplier)).
		Floor().
		IntPart()
}

func payoutResult(stake int64, multiplier float64) model.PayoutResult {
	amount := FloorPayout(stake, multiplier)
	return model.PayoutResult{
		Multiplier: multiplier,
		Amount:     amount,
		NetProfit:  amount - stake,
	}
}
