package games

import (
	"fmt"
	"wager_engine/internal/config"
	"wager_engine/internal/model"
	"wager_engine/internal/rng"
)

const (
	MinesArmed     = "armed"
	MinesRevealing = "revealing"
	MinesBusted    = "busted"
	MinesCashedOut = "cashed_out"

	minesMaxSide = 10
)

// MinesGame - grid reveal game, every safe tile compounds the multiplier
type MinesGame struct {
	settings config.MinesSettings
}

func NewMines(settings config.MinesSettings) (*MinesGame, error) {
	if settings.Rows < 1 || settings.Cols < 1 || settings.Rows*settings.Cols < 2 {
		return nil, fmt.Errorf("mines: grid %dx%d is too small", settings.Rows, settings.Cols)
	}
	if settings.HouseEdge <= 0 || settings.HouseEdge > 1 {
		return nil, fmt.Errorf("mines: house edge must be in (0,1], got %v", settings.HouseEdge)
	}
	total := settings.Rows * settings.Cols
	if settings.DefaultMines < 1 || settings.DefaultMines >= total {
		return nil, fmt.Errorf("mines: default mine count %d out of [1,%d]", settings.DefaultMines, total-1)
	}
	return &MinesGame{settings: settings}, nil
}

type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type MinesState struct {
	phase      string
	bet        int64
	rows       int
	cols       int
	mineCount  int
	houseEdge  float64
	mines      []bool // shared between states, never written after Start
	revealed   []int
	multiplier float64
}

func (s *MinesState) Phase() string { return s.phase }
func (s *MinesState) Stake() int64  { return s.bet }

func (s *MinesState) total() int { return s.rows * s.cols }

// Multiplier is the cash-out multiplier for the tiles revealed so far
func (s *MinesState) Multiplier() float64 { return s.multiplier }

func (s *MinesState) Revealed() int { return len(s.revealed) }

// MineCells discloses the layout, only meant for finished rounds and tests
func (s *MinesState) MineCells() []Cell {
	cells := make([]Cell, 0, s.mineCount)
	for i, isMine := range s.mines {
		if isMine {
			cells = append(cells, Cell{Row: i / s.cols, Col: i % s.cols})
		}
	}
	return cells
}

type MinesView struct {
	Phase          string  `json:"phase"`
	Rows           int     `json:"rows"`
	Cols           int     `json:"cols"`
	Mines          int     `json:"mines"`
	Revealed       []Cell  `json:"revealed"`
	Multiplier     float64 `json:"multiplier"`
	NextMultiplier float64 `json:"next_multiplier,omitempty"`
	MineLayout     []Cell  `json:"mine_layout,omitempty"`
}

func (s *MinesState) View() any {
	revealed := make([]Cell, len(s.revealed))
	for i, idx := range s.revealed {
		revealed[i] = Cell{Row: idx / s.cols, Col: idx % s.cols}
	}
	v := MinesView{
		Phase:      s.phase,
		Rows:       s.rows,
		Cols:       s.cols,
		Mines:      s.mineCount,
		Revealed:   revealed,
		Multiplier: s.multiplier,
	}
	switch s.phase {
	case MinesBusted, MinesCashedOut:
		v.MineLayout = s.MineCells()
	default:
		if len(s.revealed) < s.total()-s.mineCount {
			v.NextMultiplier = MinesMultiplier(s.total(), s.mineCount, len(s.revealed)+1, s.houseEdge)
		}
	}
	return v
}

func (g *MinesGame) Kind() model.GameKind { return model.GameMines }

func (g *MinesGame) Start(src rng.Source, round Round) (State, error) {
	rows, err := paramInt(round.Params, "rows", g.settings.Rows)
	if err != nil {
		return nil, err
	}
	cols, err := paramInt(round.Params, "cols", g.settings.Cols)
	if err != nil {
		return nil, err
	}
	if rows < 1 || rows > minesMaxSide || cols < 1 || cols > minesMaxSide || rows*cols < 2 {
		return nil, model.NewValidationError("grid", "%dx%d is outside 1..%d per side", rows, cols, minesMaxSide)
	}
	total := rows * cols

	mineCount, err := paramInt(round.Params, "mines", g.settings.DefaultMines)
	if err != nil {
		return nil, err
	}
	if mineCount < 1 || mineCount >= total {
		return nil, model.NewValidationError("mines", "must be between 1 and %d, got %d", total-1, mineCount)
	}

	layout, err := sampleMines(src, total, mineCount)
	if err != nil {
		return nil, err
	}

	return &MinesState{
		phase:      MinesArmed,
		bet:        round.Bet,
		rows:       rows,
		cols:       cols,
		mineCount:  mineCount,
		houseEdge:  g.settings.HouseEdge,
		mines:      layout,
		multiplier: 1.0,
	}, nil
}

// sampleMines - rejection sampling: draw a cell, keep it if new, repeat
// until mineCount distinct cells are chosen
func sampleMines(src rng.Source, total, mineCount int) ([]bool, error) {
	layout := make([]bool, total)
	placed := 0
	for placed < mineCount {
		cell, err := src.IntN(total)
		if err != nil {
			return nil, err
		}
		if layout[cell] {
			continue
		}
		layout[cell] = true
		placed++
	}
	return layout, nil
}

func (g *MinesGame) Act(_ rng.Source, st State, action model.Action) (State, error) {
	s, ok := st.(*MinesState)
	if !ok {
		return nil, wrongState(st)
	}

	switch action.Type {
	case ActionReveal:
		return s.reveal(action)
	case ActionCashout:
		if s.phase != MinesRevealing || len(s.revealed) == 0 {
			return nil, &model.TransitionError{State: s.phase, Action: action.Type}
		}
		next := *s
		next.phase = MinesCashedOut
		return &next, nil
	default:
		return nil, &model.TransitionError{State: s.phase, Action: action.Type}
	}
}

func (s *MinesState) reveal(action model.Action) (State, error) {
	if s.phase != MinesArmed && s.phase != MinesRevealing {
		return nil, &model.TransitionError{State: s.phase, Action: action.Type}
	}
	if action.Row < 0 || action.Row >= s.rows || action.Col < 0 || action.Col >= s.cols {
		return nil, model.NewValidationError("cell", "(%d,%d) is outside the %dx%d grid", action.Row, action.Col, s.rows, s.cols)
	}
	idx := action.Row*s.cols + action.Col
	for _, r := range s.revealed {
		if r == idx {
			return nil, &model.TransitionError{State: s.phase, Action: "reveal revealed cell"}
		}
	}

	next := *s
	next.revealed = make([]int, len(s.revealed), len(s.revealed)+1)
	copy(next.revealed, s.revealed)
	next.revealed = append(next.revealed, idx)

	if s.mines[idx] {
		next.phase = MinesBusted
		return &next, nil
	}

	next.phase = MinesRevealing
	next.multiplier = MinesMultiplier(s.total(), s.mineCount, len(next.revealed), s.houseEdge)
	return &next, nil
}

func (g *MinesGame) IsTerminal(st State) bool {
	switch st.Phase() {
	case MinesBusted, MinesCashedOut:
		return true
	}
	return false
}

func (g *MinesGame) ComputePayout(st State) model.PayoutResult {
	s, ok := st.(*MinesState)
	if !ok || s.phase != MinesCashedOut {
		return payoutResult(st.Stake(), 0)
	}
	return payoutResult(s.bet, s.multiplier)
}
