package games

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"wager_engine/internal/config"
	"wager_engine/internal/model"
	"wager_engine/internal/rng"
)

const (
	PlinkoLanded = "landed"

	// every n-th tick goes into the replay path
	plinkoPathEvery = 8
)

var ErrBallStuck = errors.New("plinko: ball did not reach the bottom within the tick budget")

// PlinkoGame - one ball per wager, dropped through a peg board
type PlinkoGame struct {
	physics     config.PlinkoPhysics
	defaultTier string
	tiers       map[string]plinkoBoard
}

type plinkoBoard struct {
	rows        int
	multipliers []float64
	jitter      float64
	pegRows     []pegRow
	left        float64 // playfield edges, slot bins run between them
	right       float64
	pitch       float64
	bottom      float64
}

type pegRow struct {
	y  float64
	xs []float64
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewPlinko(settings config.PlinkoSettings) (*PlinkoGame, error) {
	if err := validatePhysics(settings.Physics); err != nil {
		return nil, err
	}
	if len(settings.Tiers) == 0 {
		return nil, errors.New("plinko: no tiers configured")
	}
	if _, ok := settings.Tiers[settings.DefaultTier]; !ok {
		return nil, fmt.Errorf("plinko: default tier %q is not configured", settings.DefaultTier)
	}

	g := &PlinkoGame{
		physics:     settings.Physics,
		defaultTier: settings.DefaultTier,
		tiers:       make(map[string]plinkoBoard, len(settings.Tiers)),
	}
	for name, tier := range settings.Tiers {
		if err := validateTier(tier); err != nil {
			return nil, fmt.Errorf("plinko: tier %q: %w", name, err)
		}
		if need := float64(tier.Rows+2)*settings.Physics.PegPitch + 2*settings.Physics.Margin; need > settings.Physics.Width {
			return nil, fmt.Errorf("plinko: tier %q needs a board %v wide, have %v", name, need, settings.Physics.Width)
		}
		if tier.Jitter < 0 {
			return nil, fmt.Errorf("plinko: tier %q: jitter must not be negative", name)
		}
		g.tiers[name] = newBoard(settings.Physics, tier)
	}
	return g, nil
}

func validatePhysics(p config.PlinkoPhysics) error {
	switch {
	case p.Width <= 2*p.Margin:
		return fmt.Errorf("plinko: width %v leaves no playfield inside margin %v", p.Width, p.Margin)
	case p.PegRadius <= 0 || p.BallRadius <= 0:
		return errors.New("plinko: peg and ball radius must be positive")
	case p.PegPitch <= 2*(p.PegRadius+p.BallRadius):
		return fmt.Errorf("plinko: peg pitch %v does not let the ball through", p.PegPitch)
	case p.Gravity <= 0 || p.Speed <= 0:
		return errors.New("plinko: gravity and speed must be positive")
	case p.RowSpacing <= 0:
		return errors.New("plinko: row spacing must be positive")
	case p.Drag <= 0 || p.Drag > 1:
		return fmt.Errorf("plinko: drag must be in (0,1], got %v", p.Drag)
	case p.Restitution < 0 || p.Restitution >= 1:
		return fmt.Errorf("plinko: restitution must be in [0,1), got %v", p.Restitution)
	case p.Jitter < 0 || p.DropSpread < 0 || p.Clearance < 0:
		return errors.New("plinko: jitter, drop spread and clearance must not be negative")
	case p.MaxTicks <= 0:
		return errors.New("plinko: tick budget must be positive")
	}
	return nil
}

// validateTier - rows+2 slots, symmetric, nothing above the edges
func validateTier(tier config.PlinkoTier) error {
	if tier.Rows < 1 {
		return fmt.Errorf("rows must be positive, got %d", tier.Rows)
	}
	m := tier.Multipliers
	if len(m) != tier.Rows+2 {
		return fmt.Errorf("%d rows need %d multipliers, got %d", tier.Rows, tier.Rows+2, len(m))
	}
	for i, v := range m {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("multiplier %d is negative", i)
		}
		if v != m[len(m)-1-i] {
			return fmt.Errorf("multipliers are not symmetric at slot %d", i)
		}
		if v > m[0] {
			return fmt.Errorf("slot %d pays more than the edge", i)
		}
	}
	return nil
}

// newBoard lays out a triangular lattice centred on the drop point. Row r
// has r+2 pegs at a constant pitch, each row shifted by half a pitch. The
// pegs of the last row sit on the inner slot boundaries, so every slot is
// the gap under two neighbouring pegs and the edge slots lie outside them.
func newBoard(p config.PlinkoPhysics, tier config.PlinkoTier) plinkoBoard {
	center := p.Width / 2
	rows := make([]pegRow, tier.Rows)
	for r := range rows {
		xs := make([]float64, r+2)
		for j := range xs {
			xs[j] = center + (float64(j)-float64(r+1)/2)*p.PegPitch
		}
		rows[r] = pegRow{y: p.PegTop + float64(r)*p.RowSpacing, xs: xs}
	}

	jitter := tier.Jitter
	if jitter == 0 {
		jitter = p.Jitter
	}
	half := float64(tier.Rows+2) * p.PegPitch / 2
	return plinkoBoard{
		rows:        tier.Rows,
		multipliers: append([]float64(nil), tier.Multipliers...),
		jitter:      jitter,
		pegRows:     rows,
		left:        center - half,
		right:       center + half,
		pitch:       p.PegPitch,
		bottom:      p.PegTop + float64(tier.Rows)*p.RowSpacing,
	}
}

func (g *PlinkoGame) Kind() model.GameKind { return model.GamePlinko }

// Tiers lists the configured difficulty names.
func (g *PlinkoGame) Tiers() []string {
	names := make([]string, 0, len(g.tiers))
	for name := range g.tiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PlinkoTierInfo - public face of a tier
type PlinkoTierInfo struct {
	Name        string
	Rows        int
	Multipliers []float64
	Default     bool
}

// TierInfo lists rows and slot multipliers of every tier, sorted by name.
func (g *PlinkoGame) TierInfo() []PlinkoTierInfo {
	names := g.Tiers()
	out := make([]PlinkoTierInfo, len(names))
	for i, name := range names {
		board := g.tiers[name]
		out[i] = PlinkoTierInfo{
			Name:        name,
			Rows:        board.rows,
			Multipliers: append([]float64(nil), board.multipliers...),
			Default:     name == g.defaultTier,
		}
	}
	return out
}

type PlinkoState struct {
	bet        int64
	tier       string
	rows       int
	slot       int
	multiplier float64
	finalY     float64
	bottom     float64
	ticks      int
	path       []Point
}

func (s *PlinkoState) Phase() string { return PlinkoLanded }
func (s *PlinkoState) Stake() int64  { return s.bet }

func (s *PlinkoState) Slot() int           { return s.slot }
func (s *PlinkoState) FinalY() float64     { return s.finalY }
func (s *PlinkoState) Bottom() float64     { return s.bottom }
func (s *PlinkoState) Ticks() int          { return s.ticks }
func (s *PlinkoState) Tier() string        { return s.tier }
func (s *PlinkoState) Multiplier() float64 { return s.multiplier }

type PlinkoView struct {
	Phase      string  `json:"phase"`
	Tier       string  `json:"tier"`
	Rows       int     `json:"rows"`
	Slot       int     `json:"slot"`
	Multiplier float64 `json:"multiplier"`
	Ticks      int     `json:"ticks"`
	Path       []Point `json:"path"`
}

func (s *PlinkoState) View() any {
	return PlinkoView{
		Phase:      PlinkoLanded,
		Tier:       s.tier,
		Rows:       s.rows,
		Slot:       s.slot,
		Multiplier: s.multiplier,
		Ticks:      s.ticks,
		Path:       s.path,
	}
}

func (g *PlinkoGame) Start(src rng.Source, round Round) (State, error) {
	tierName, err := paramString(round.Params, "tier", g.defaultTier)
	if err != nil {
		return nil, err
	}
	board, ok := g.tiers[tierName]
	if !ok {
		return nil, model.NewValidationError("tier", "unknown tier %q, expected one of %v", tierName, g.Tiers())
	}

	d, err := g.drop(src, board)
	if err != nil {
		return nil, err
	}

	return &PlinkoState{
		bet:        round.Bet,
		tier:       tierName,
		rows:       board.rows,
		slot:       d.slot,
		multiplier: board.multipliers[d.slot],
		finalY:     d.final.Y,
		bottom:     board.bottom,
		ticks:      d.ticks,
		path:       d.path,
	}, nil
}

type dropResult struct {
	slot  int
	final Point
	ticks int
	path  []Point
}

// drop runs the fixed timestep simulation until the ball crosses the bottom
// boundary. The slot comes from the horizontal position at that moment.
func (g *PlinkoGame) drop(src rng.Source, board plinkoBoard) (dropResult, error) {
	p := g.physics
	contact := p.BallRadius + p.PegRadius
	left, right := board.left+p.BallRadius, board.right-p.BallRadius

	f, err := src.Float64()
	if err != nil {
		return dropResult{}, err
	}
	x := p.Width/2 + (f-0.5)*p.DropSpread
	y := p.DropY
	f, err = src.Float64()
	if err != nil {
		return dropResult{}, err
	}
	vx, vy := f-0.5, 0.0

	path := []Point{roundPoint(x, y)}
	for tick := 1; tick <= p.MaxTicks; tick++ {
		vy += p.Gravity
		vx *= p.Drag
		x += vx * p.Speed
		y += vy * p.Speed

		for _, row := range board.pegRows {
			if math.Abs(y-row.y) >= contact {
				continue
			}
			for _, pegX := range row.xs {
				dx, dy := x-pegX, y-row.y
				if math.Hypot(dx, dy) >= contact {
					continue
				}
				angle := math.Atan2(dy, dx)
				jitter, err := src.Float64()
				if err != nil {
					return dropResult{}, err
				}
				nx, ny := math.Cos(angle), math.Sin(angle)
				vx = nx*p.BounceSpeed + (jitter-0.5)*board.jitter
				vy = math.Abs(ny) * p.BounceLift
				// outside the peg again, no tunneling on the next tick
				x = pegX + nx*(contact+p.Clearance)
				y = row.y + ny*(contact+p.Clearance)
			}
		}

		if x <= left || x >= right {
			vx *= -p.Restitution
			x = math.Max(left, math.Min(right, x))
		}

		if tick%plinkoPathEvery == 0 {
			path = append(path, roundPoint(x, y))
		}

		if y >= board.bottom {
			path = append(path, roundPoint(x, y))
			return dropResult{
				slot:  board.slotIndex(x),
				final: Point{X: x, Y: y},
				ticks: tick,
				path:  path,
			}, nil
		}
	}
	return dropResult{}, ErrBallStuck
}

// slotIndex buckets x into equal-width bins, one pitch each, across the
// playfield
func (b plinkoBoard) slotIndex(x float64) int {
	slots := len(b.multipliers)
	idx := int(math.Floor((x - b.left) / b.pitch))
	if idx < 0 {
		return 0
	}
	if idx >= slots {
		return slots - 1
	}
	return idx
}

func roundPoint(x, y float64) Point {
	return Point{X: math.Round(x*10) / 10, Y: math.Round(y*10) / 10}
}

func (g *PlinkoGame) Act(_ rng.Source, st State, action model.Action) (State, error) {
	return nil, &model.TransitionError{State: st.Phase(), Action: action.Type}
}

func (g *PlinkoGame) IsTerminal(State) bool { return true }

func (g *PlinkoGame) ComputePayout(st State) model.PayoutResult {
	s, ok := st.(*PlinkoState)
	if !ok {
		return payoutResult(st.Stake(), 0)
	}
	return payoutResult(s.bet, s.multiplier)
}
