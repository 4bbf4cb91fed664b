package games

import (
	"fmt"
	"sync"
	"wager_engine/internal/config"
	"wager_engine/internal/model"
	"wager_engine/internal/rng"
)

const (
	BlackjackPlayerTurn = "player_turn"
	BlackjackFinished   = "finished"

	dealerStandsAt = 17
)

// Hand outcomes
const (
	OutcomeBlackjack  = "blackjack"
	OutcomeWin        = "win"
	OutcomeDealerBust = "dealer_bust"
	OutcomePush       = "push"
	OutcomeBust       = "bust"
	OutcomeLose       = "lose"
)

var outcomeMultipliers = map[string]float64{
	OutcomeBlackjack:  2.5,
	OutcomeWin:        2,
	OutcomeDealerBust: 2,
	OutcomePush:       1,
	OutcomeBust:       0,
	OutcomeLose:       0,
}

// BlackjackGame - single deck shoe kept per player between hands
type BlackjackGame struct {
	reshuffleAt int

	mtx   sync.Mutex
	shoes map[int][]Card
}

func NewBlackjack(settings config.BlackjackSettings) (*BlackjackGame, error) {
	if settings.ReshuffleAt < 4 || settings.ReshuffleAt > deckSize {
		return nil, fmt.Errorf("blackjack: reshuffle threshold must be in [4,%d], got %d", deckSize, settings.ReshuffleAt)
	}
	return &BlackjackGame{
		reshuffleAt: settings.ReshuffleAt,
		shoes:       make(map[int][]Card),
	}, nil
}

type BlackjackState struct {
	phase      string
	playerID   int
	bet        int64
	doubled    bool
	player     []Card
	dealer     []Card
	shoe       []Card
	outcome    string
	reshuffled bool
}

func (s *BlackjackState) Phase() string { return s.phase }

func (s *BlackjackState) Stake() int64 {
	if s.doubled {
		return s.bet * 2
	}
	return s.bet
}

func (s *BlackjackState) Outcome() string { return s.outcome }
func (s *BlackjackState) Player() []Card  { return s.player }
func (s *BlackjackState) Dealer() []Card  { return s.dealer }
func (s *BlackjackState) ShoeSize() int   { return len(s.shoe) }

func (s *BlackjackState) canDouble() bool {
	return s.phase == BlackjackPlayerTurn && len(s.player) == 2 && !s.doubled
}

type HandView struct {
	Cards       []Card `json:"cards"`
	Hidden      int    `json:"hidden,omitempty"`
	Value       int    `json:"value"`
	IsBlackjack bool   `json:"is_blackjack"`
	IsBust      bool   `json:"is_bust"`
}

type BlackjackView struct {
	Phase      string   `json:"phase"`
	Player     HandView `json:"player"`
	Dealer     HandView `json:"dealer"`
	Stake      int64    `json:"stake"`
	Doubled    bool     `json:"doubled"`
	CanDouble  bool     `json:"can_double"`
	Outcome    string   `json:"outcome,omitempty"`
	ShoeLeft   int      `json:"shoe_left"`
	Reshuffled bool     `json:"reshuffled,omitempty"`
}

func handView(cards []Card) HandView {
	return HandView{
		Cards:       cards,
		Value:       HandValue(cards),
		IsBlackjack: IsBlackjack(cards),
		IsBust:      IsBust(cards),
	}
}

func (s *BlackjackState) View() any {
	dealer := handView(s.dealer)
	// hole card stays face down during the player's turn
	if s.phase == BlackjackPlayerTurn && len(s.dealer) > 1 {
		up := s.dealer[:1]
		dealer = HandView{Cards: up, Hidden: len(s.dealer) - 1, Value: HandValue(up)}
	}
	return BlackjackView{
		Phase:      s.phase,
		Player:     handView(s.player),
		Dealer:     dealer,
		Stake:      s.Stake(),
		Doubled:    s.doubled,
		CanDouble:  s.canDouble(),
		Outcome:    s.outcome,
		ShoeLeft:   len(s.shoe),
		Reshuffled: s.reshuffled,
	}
}

func (g *BlackjackGame) Kind() model.GameKind { return model.GameBlackjack }

func (g *BlackjackGame) takeShoe(playerID int) []Card {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	return g.shoes[playerID]
}

func (g *BlackjackGame) keepShoe(playerID int, shoe []Card) {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	g.shoes[playerID] = shoe
}

// draw pops the top card. An exhausted shoe is replaced by a fresh one.
func draw(src rng.Source, shoe []Card) (Card, []Card, error) {
	if len(shoe) == 0 {
		fresh, err := shuffledDeck(src)
		if err != nil {
			return Card{}, nil, err
		}
		shoe = fresh
	}
	last := len(shoe) - 1
	return shoe[last], shoe[:last], nil
}

func (g *BlackjackGame) Start(src rng.Source, round Round) (State, error) {
	shoe := g.takeShoe(round.PlayerID)
	reshuffled := false
	if len(shoe) < g.reshuffleAt {
		fresh, err := shuffledDeck(src)
		if err != nil {
			return nil, err
		}
		shoe = fresh
		reshuffled = true
	}

	var (
		player = make([]Card, 0, 2)
		dealer = make([]Card, 0, 2)
		card   Card
		err    error
	)
	for i := 0; i < 2; i++ {
		card, shoe, err = draw(src, shoe)
		if err != nil {
			return nil, err
		}
		player = append(player, card)

		card, shoe, err = draw(src, shoe)
		if err != nil {
			return nil, err
		}
		dealer = append(dealer, card)
	}

	s := &BlackjackState{
		phase:      BlackjackPlayerTurn,
		playerID:   round.PlayerID,
		bet:        round.Bet,
		player:     player,
		dealer:     dealer,
		shoe:       shoe,
		reshuffled: reshuffled,
	}

	// a natural resolves before any player action
	if IsBlackjack(player) {
		if IsBlackjack(dealer) {
			s.finish(OutcomePush)
		} else {
			s.finish(OutcomeBlackjack)
		}
		g.keepShoe(s.playerID, s.shoe)
	}
	return s, nil
}

func (s *BlackjackState) finish(outcome string) {
	s.phase = BlackjackFinished
	s.outcome = outcome
}

func (g *BlackjackGame) Act(src rng.Source, st State, action model.Action) (State, error) {
	s, ok := st.(*BlackjackState)
	if !ok {
		return nil, wrongState(st)
	}
	if s.phase != BlackjackPlayerTurn {
		return nil, &model.TransitionError{State: s.phase, Action: action.Type}
	}

	next := *s
	switch action.Type {
	case ActionHit:
		if err := next.hitPlayer(src); err != nil {
			return nil, err
		}
		if IsBust(next.player) {
			next.finish(OutcomeBust)
		}
	case ActionStand:
		if err := next.playDealer(src); err != nil {
			return nil, err
		}
	case ActionDouble:
		if !s.canDouble() {
			return nil, &model.TransitionError{State: s.phase, Action: "double after hit"}
		}
		next.doubled = true
		if err := next.hitPlayer(src); err != nil {
			return nil, err
		}
		if IsBust(next.player) {
			next.finish(OutcomeBust)
		} else if err := next.playDealer(src); err != nil {
			return nil, err
		}
	default:
		return nil, &model.TransitionError{State: s.phase, Action: action.Type}
	}

	if next.phase == BlackjackFinished {
		g.keepShoe(next.playerID, next.shoe)
	}
	return &next, nil
}

func (s *BlackjackState) hitPlayer(src rng.Source) error {
	card, shoe, err := draw(src, s.shoe)
	if err != nil {
		return err
	}
	player := make([]Card, len(s.player), len(s.player)+1)
	copy(player, s.player)
	s.player = append(player, card)
	s.shoe = shoe
	return nil
}

// playDealer runs the dealer policy to the end: hit below 17, stand otherwise
func (s *BlackjackState) playDealer(src rng.Source) error {
	dealer := make([]Card, len(s.dealer))
	copy(dealer, s.dealer)
	shoe := s.shoe
	for HandValue(dealer) < dealerStandsAt {
		var (
			card Card
			err  error
		)
		card, shoe, err = draw(src, shoe)
		if err != nil {
			return err
		}
		dealer = append(dealer, card)
	}
	s.dealer = dealer
	s.shoe = shoe

	playerValue := HandValue(s.player)
	dealerValue := HandValue(dealer)
	switch {
	case dealerValue > 21:
		s.finish(OutcomeDealerBust)
	case dealerValue > playerValue:
		s.finish(OutcomeLose)
	case dealerValue < playerValue:
		s.finish(OutcomeWin)
	default:
		s.finish(OutcomePush)
	}
	return nil
}

func (g *BlackjackGame) IsTerminal(st State) bool {
	return st.Phase() == BlackjackFinished
}

func (g *BlackjackGame) ComputePayout(st State) model.PayoutResult {
	s, ok := st.(*BlackjackState)
	if !ok || s.phase != BlackjackFinished {
		return payoutResult(st.Stake(), 0)
	}
	return payoutResult(s.Stake(), outcomeMultipliers[s.outcome])
}

func (g *BlackjackGame) StakeAfter(st State, action model.Action) int64 {
	if action.Type == ActionDouble {
		if s, ok := st.(*BlackjackState); ok {
			return s.bet * 2
		}
	}
	return st.Stake()
}
