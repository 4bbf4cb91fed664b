package games

import (
	"errors"
	"fmt"
	"math"
	"wager_engine/internal/config"
	"wager_engine/internal/model"
	"wager_engine/internal/rng"
)

const (
	CaseOpened = "opened"

	chanceTolerance = 1e-9
)

// CasesGame - weighted loot box, the item value is the payout
type CasesGame struct {
	order []string
	cases map[string]config.CaseSettings
}

func NewCases(catalog []config.CaseSettings) (*CasesGame, error) {
	if len(catalog) == 0 {
		return nil, errors.New("cases: catalog is empty")
	}
	g := &CasesGame{cases: make(map[string]config.CaseSettings, len(catalog))}
	for _, c := range catalog {
		if _, dup := g.cases[c.ID]; dup {
			return nil, fmt.Errorf("cases: duplicate case id %q", c.ID)
		}
		if err := validateCase(c); err != nil {
			return nil, fmt.Errorf("cases: %q: %w", c.ID, err)
		}
		g.order = append(g.order, c.ID)
		g.cases[c.ID] = c
	}
	return g, nil
}

// validateCase - drop chances must add up to 100
func validateCase(c config.CaseSettings) error {
	if c.ID == "" {
		return errors.New("id is empty")
	}
	if c.Price <= 0 {
		return fmt.Errorf("price must be positive, got %d", c.Price)
	}
	if len(c.Items) == 0 {
		return errors.New("no items")
	}
	sum := 0.0
	for _, it := range c.Items {
		if it.Chance < 0 || math.IsNaN(it.Chance) {
			return fmt.Errorf("item %q has a negative chance", it.Name)
		}
		if it.Value < 0 {
			return fmt.Errorf("item %q has a negative value", it.Name)
		}
		sum += it.Chance
	}
	if math.Abs(sum-100) > chanceTolerance {
		return fmt.Errorf("chances add up to %v, not 100", sum)
	}
	return nil
}

func (g *CasesGame) Kind() model.GameKind { return model.GameCases }

// Catalog returns the cases in config order.
func (g *CasesGame) Catalog() []config.CaseSettings {
	out := make([]config.CaseSettings, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.cases[id])
	}
	return out
}

type CaseState struct {
	bet   int64
	box   config.CaseSettings
	roll  float64
	index int
}

func (s *CaseState) Phase() string { return CaseOpened }
func (s *CaseState) Stake() int64  { return s.bet }

func (s *CaseState) Item() config.CaseItemSpec { return s.box.Items[s.index] }

type CaseView struct {
	Phase  string  `json:"phase"`
	CaseID string  `json:"case_id"`
	Price  int64   `json:"price"`
	Item   string  `json:"item"`
	Rarity string  `json:"rarity"`
	Value  int64   `json:"value"`
	Roll   float64 `json:"roll"`
}

func (s *CaseState) View() any {
	it := s.Item()
	return CaseView{
		Phase:  CaseOpened,
		CaseID: s.box.ID,
		Price:  s.box.Price,
		Item:   it.Name,
		Rarity: it.Rarity,
		Value:  it.Value,
		Roll:   math.Round(s.roll*100) / 100,
	}
}

func (g *CasesGame) Start(src rng.Source, round Round) (State, error) {
	def := ""
	if len(g.order) == 1 {
		def = g.order[0]
	}
	id, err := paramString(round.Params, "case", def)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, model.NewValidationError("case", "is required, one of %v", g.order)
	}
	box, ok := g.cases[id]
	if !ok {
		return nil, model.NewValidationError("case", "unknown case %q", id)
	}
	if round.Bet != box.Price {
		return nil, model.NewValidationError("bet", "case %q costs %d, got %d", id, box.Price, round.Bet)
	}

	f, err := src.Float64()
	if err != nil {
		return nil, err
	}
	r := f * 100

	return &CaseState{
		bet:   round.Bet,
		box:   box,
		roll:  r,
		index: pickItem(box.Items, r),
	}, nil
}

// pickItem - inverse CDF walk: first item whose cumulative chance reaches r.
// Float drift past the last bound falls back to the last item that can drop.
func pickItem(items []config.CaseItemSpec, r float64) int {
	cumulative := 0.0
	last := -1
	for i, it := range items {
		if it.Chance <= 0 {
			continue
		}
		last = i
		cumulative += it.Chance
		if r <= cumulative {
			return i
		}
	}
	return last
}

func (g *CasesGame) Act(_ rng.Source, st State, action model.Action) (State, error) {
	return nil, &model.TransitionError{State: st.Phase(), Action: action.Type}
}

func (g *CasesGame) IsTerminal(State) bool { return true }

// ComputePayout - the amount is the item value itself, not a floored product
func (g *CasesGame) ComputePayout(st State) model.PayoutResult {
	s, ok := st.(*CaseState)
	if !ok {
		return payoutResult(st.Stake(), 0)
	}
	value := s.Item().Value
	return model.PayoutResult{
		Multiplier: float64(value) / float64(s.box.Price),
		Amount:     value,
		NetProfit:  value - s.bet,
	}
}
