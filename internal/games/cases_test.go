package games

import (
	"errors"
	"math"
	"testing"
	"wager_engine/internal/config"
	"wager_engine/internal/config/env"
	"wager_engine/internal/model"
	"wager_engine/internal/rng"
)

func newTestCases(t *testing.T) *CasesGame {
	t.Helper()
	g, err := NewCases(env.DefaultGamesConfig().Cases())
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestCasesChancesSumTo100(t *testing.T) {
	g := newTestCases(t)
	for _, c := range g.Catalog() {
		sum := 0.0
		for _, it := range c.Items {
			sum += it.Chance
		}
		if math.Abs(sum-100) > chanceTolerance {
			t.Errorf("case %s: chances sum to %v", c.ID, sum)
		}
	}
}

func TestCasesRejectsBadCatalog(t *testing.T) {
	bad := [][]config.CaseSettings{
		nil,
		{{ID: "a", Price: 10, Items: []config.CaseItemSpec{{Name: "x", Value: 1, Chance: 99}}}},
		{{ID: "a", Price: 0, Items: []config.CaseItemSpec{{Name: "x", Value: 1, Chance: 100}}}},
		{{ID: "a", Price: 10, Items: []config.CaseItemSpec{{Name: "x", Value: 1, Chance: 110}, {Name: "y", Value: 1, Chance: -10}}}},
		{
			{ID: "a", Price: 10, Items: []config.CaseItemSpec{{Name: "x", Value: 1, Chance: 100}}},
			{ID: "a", Price: 20, Items: []config.CaseItemSpec{{Name: "x", Value: 1, Chance: 100}}},
		},
	}
	for i, catalog := range bad {
		if _, err := NewCases(catalog); err == nil {
			t.Errorf("catalog %d accepted", i)
		}
	}
}

func TestCasesOpen(t *testing.T) {
	g := newTestCases(t)

	// 0.995 * 100 lands in the last 1% of the basic case
	st, err := g.Start(newScripted([]float64{0.995}, nil), Round{Bet: 10, Params: map[string]any{"case": "basic"}})
	if err != nil {
		t.Fatal(err)
	}
	item := st.(*CaseState).Item()
	if item.Name != "Diamond" {
		t.Fatalf("drew %s", item.Name)
	}
	p := g.ComputePayout(st)
	if p.Amount != 50 || p.NetProfit != 40 || p.Multiplier != 5 {
		t.Fatalf("payout = %+v", p)
	}

	st, err = g.Start(newScripted([]float64{0}, nil), Round{Bet: 10, Params: map[string]any{"case": "basic"}})
	if err != nil {
		t.Fatal(err)
	}
	if p := g.ComputePayout(st); p.Amount != 1 || p.NetProfit != -9 {
		t.Fatalf("junk payout = %+v", p)
	}
}

func TestCasesBetMustMatchPrice(t *testing.T) {
	g := newTestCases(t)
	var ve *model.ValidationError

	for _, params := range []map[string]any{
		{"case": "premium"},
		{"case": "nope"},
		{},
	} {
		if _, err := g.Start(rng.NewCrypto(), Round{Bet: 10, Params: params}); !errors.As(err, &ve) {
			t.Errorf("params %v: expected ValidationError, got %v", params, err)
		}
	}
}

func TestPickItemFallsBackToLastDroppable(t *testing.T) {
	items := []config.CaseItemSpec{
		{Name: "a", Chance: 50},
		{Name: "b", Chance: 50},
		{Name: "never", Chance: 0},
	}
	if got := pickItem(items, 100.0000001); got != 1 {
		t.Fatalf("got item %d, want 1", got)
	}
	if got := pickItem(items, 50); got != 0 {
		t.Fatalf("boundary roll picked %d", got)
	}
}

func TestCasesSamplingMatchesChances(t *testing.T) {
	g := newTestCases(t)
	const opens = 100000

	for _, c := range g.Catalog() {
		src := rng.NewSeeded("cases", c.ID, 0)
		counts := make(map[string]int)
		for i := 0; i < opens; i++ {
			st, err := g.Start(src, Round{Bet: c.Price, Params: map[string]any{"case": c.ID}})
			if err != nil {
				t.Fatal(err)
			}
			counts[st.(*CaseState).Item().Name]++
		}
		for _, it := range c.Items {
			p := it.Chance / 100
			got := float64(counts[it.Name]) / opens
			tol := 5*math.Sqrt(p*(1-p)/opens) + 1e-4
			if math.Abs(got-p) > tol {
				t.Errorf("case %s item %s: frequency %.4f, want %.4f ± %.4f", c.ID, it.Name, got, p, tol)
			}
		}
	}
}
