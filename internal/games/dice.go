package games

import (
	"fmt"
	"math"
	"wager_engine/internal/config"
	"wager_engine/internal/model"
	"wager_engine/internal/rng"
)

const DiceRolled = "rolled"

// DiceGame - single roll under a target, settled in the same step
type DiceGame struct {
	payoutPool float64
}

func NewDice(settings config.DiceSettings) (*DiceGame, error) {
	if settings.PayoutPool <= 0 || settings.PayoutPool > 100 {
		return nil, fmt.Errorf("dice: payout pool must be in (0,100], got %v", settings.PayoutPool)
	}
	return &DiceGame{payoutPool: settings.PayoutPool}, nil
}

type DiceState struct {
	bet        int64
	target     float64
	roll       float64
	multiplier float64
}

func (s *DiceState) Phase() string { return DiceRolled }
func (s *DiceState) Stake() int64  { return s.bet }

func (s *DiceState) Roll() float64 { return s.roll }
func (s *DiceState) Won() bool     { return s.roll < s.target }

type DiceView struct {
	Phase      string  `json:"phase"`
	Target     float64 `json:"target"`
	Roll       float64 `json:"roll"`
	Multiplier float64 `json:"multiplier"`
	Won        bool    `json:"won"`
}

func (s *DiceState) View() any {
	return DiceView{
		Phase:      DiceRolled,
		Target:     s.target,
		Roll:       math.Round(s.roll*100) / 100,
		Multiplier: s.multiplier,
		Won:        s.Won(),
	}
}

func (g *DiceGame) Kind() model.GameKind { return model.GameDice }

func (g *DiceGame) Start(src rng.Source, round Round) (State, error) {
	target, ok, err := paramFloat(round.Params, "target")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.NewValidationError("target", "is required")
	}
	if target <= 0 || target >= 100 || math.IsNaN(target) {
		return nil, model.NewValidationError("target", "must be strictly between 0 and 100, got %v", target)
	}

	f, err := src.Float64()
	if err != nil {
		return nil, err
	}

	return &DiceState{
		bet:        round.Bet,
		target:     target,
		roll:       f * 100,
		multiplier: DiceMultiplier(g.payoutPool, target),
	}, nil
}

func (g *DiceGame) Act(_ rng.Source, st State, action model.Action) (State, error) {
	return nil, &model.TransitionError{State: st.Phase(), Action: action.Type}
}

func (g *DiceGame) IsTerminal(State) bool { return true }

func (g *DiceGame) ComputePayout(st State) model.PayoutResult {
	s, ok := st.(*DiceState)
	if !ok || !s.Won() {
		return payoutResult(st.Stake(), 0)
	}
	return payoutResult(s.bet, s.multiplier)
}
