package games

import (
	"errors"
	"math"
	"testing"
	"wager_engine/internal/config"
	"wager_engine/internal/model"
	"wager_engine/internal/rng"
)

func newTestDice(t *testing.T) *DiceGame {
	t.Helper()
	g, err := NewDice(config.DiceSettings{PayoutPool: 99})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestDiceWinningRoll(t *testing.T) {
	g := newTestDice(t)

	st, err := g.Start(newScripted([]float64{0.4999}, nil), Round{Bet: 10, Params: map[string]any{"target": 50.0}})
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsTerminal(st) {
		t.Fatal("dice resolves on start")
	}

	view := st.View().(DiceView)
	if view.Roll != 49.99 || !view.Won {
		t.Fatalf("view = %+v", view)
	}
	p := g.ComputePayout(st)
	if math.Abs(p.Multiplier-1.98) > 1e-12 {
		t.Fatalf("multiplier = %v, want 1.98", p.Multiplier)
	}
	if p.Amount != 19 || p.NetProfit != 9 {
		t.Fatalf("payout = %+v, want amount 19 net 9", p)
	}
}

func TestDiceLosingRoll(t *testing.T) {
	g := newTestDice(t)

	st, err := g.Start(newScripted([]float64{0.5}, nil), Round{Bet: 10, Params: map[string]any{"target": 50.0}})
	if err != nil {
		t.Fatal(err)
	}
	if p := g.ComputePayout(st); p.Amount != 0 || p.NetProfit != -10 {
		t.Fatalf("roll of exactly the target must lose, got %+v", p)
	}
}

func TestDiceTargetValidation(t *testing.T) {
	g := newTestDice(t)
	var ve *model.ValidationError

	for _, params := range []map[string]any{
		{},
		{"target": 0.0},
		{"target": 100.0},
		{"target": -3.0},
		{"target": "50"},
	} {
		if _, err := g.Start(rng.NewCrypto(), Round{Bet: 1, Params: params}); !errors.As(err, &ve) {
			t.Errorf("params %v: expected ValidationError, got %v", params, err)
		}
	}
}

func TestDiceHasNoActions(t *testing.T) {
	g := newTestDice(t)
	st, err := g.Start(rng.NewCrypto(), Round{Bet: 1, Params: map[string]any{"target": 10.0}})
	if err != nil {
		t.Fatal(err)
	}
	var te *model.TransitionError
	if _, err := g.Act(nil, st, model.Action{Type: ActionCashout}); !errors.As(err, &te) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
}

func TestDiceWinRateConverges(t *testing.T) {
	g := newTestDice(t)
	const trials = 100000

	for _, target := range []float64{10, 50, 87.5} {
		src := rng.NewSeeded("dice", "winrate", uint64(target))
		wins := 0
		for i := 0; i < trials; i++ {
			st, err := g.Start(src, Round{Bet: 1, Params: map[string]any{"target": target}})
			if err != nil {
				t.Fatal(err)
			}
			if st.(*DiceState).Won() {
				wins++
			}
		}
		rate := float64(wins) / trials
		want := target / 100
		// five standard deviations
		tol := 5 * math.Sqrt(want*(1-want)/trials)
		if math.Abs(rate-want) > tol {
			t.Errorf("target %v: win rate %.4f, want %.4f ± %.4f", target, rate, want, tol)
		}
	}
}
