package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

type EngineConfig interface {
	// Seed switches the engine to the replayable RNG when not empty
	Seed() string
	GamesConfigPath() string
	StatsWindow() int
	// TargetRTP is the default target in percent, GameTargetRTP overrides it per game
	TargetRTP() float64
	GameTargetRTP() map[string]float64
}

type GamesConfig interface {
	Mines() MinesSettings
	Dice() DiceSettings
	Blackjack() BlackjackSettings
	Plinko() PlinkoSettings
	Cases() []CaseSettings
}

type MinesSettings struct {
	Rows         int     `yaml:"rows"`
	Cols         int     `yaml:"cols"`
	HouseEdge    float64 `yaml:"house_edge"`
	DefaultMines int     `yaml:"default_mines"`
}

type DiceSettings struct {
	PayoutPool float64 `yaml:"payout_pool"`
}

type BlackjackSettings struct {
	ReshuffleAt int `yaml:"reshuffle_at"`
}

type PlinkoSettings struct {
	DefaultTier string                `yaml:"default_tier"`
	Physics     PlinkoPhysics         `yaml:"physics"`
	Tiers       map[string]PlinkoTier `yaml:"tiers"`
}

type PlinkoTier struct {
	Rows        int       `yaml:"rows"`
	Multipliers []float64 `yaml:"multipliers"`
	Jitter      float64   `yaml:"jitter"` // overrides physics jitter, sets the spread and so the RTP
}

// PlinkoPhysics - tunable feel parameters, tuned against a target RTP
type PlinkoPhysics struct {
	Width       float64 `yaml:"width"`
	Margin      float64 `yaml:"margin"`
	PegRadius   float64 `yaml:"peg_radius"`
	BallRadius  float64 `yaml:"ball_radius"`
	PegPitch    float64 `yaml:"peg_pitch"`
	PegTop      float64 `yaml:"peg_top"`
	RowSpacing  float64 `yaml:"row_spacing"`
	DropY       float64 `yaml:"drop_y"`
	DropSpread  float64 `yaml:"drop_spread"`
	Gravity     float64 `yaml:"gravity"`
	Speed       float64 `yaml:"speed"`
	Drag        float64 `yaml:"drag"`
	BounceSpeed float64 `yaml:"bounce_speed"`
	BounceLift  float64 `yaml:"bounce_lift"`
	Jitter      float64 `yaml:"jitter"`
	Restitution float64 `yaml:"restitution"`
	Clearance   float64 `yaml:"clearance"`
	MaxTicks    int     `yaml:"max_ticks"`
}

type CaseSettings struct {
	ID    string         `yaml:"id"`
	Name  string         `yaml:"name"`
	Price int64          `yaml:"price"`
	Items []CaseItemSpec `yaml:"items"`
}

type CaseItemSpec struct {
	Name   string  `yaml:"name"`
	Value  int64   `yaml:"value"`
	Chance float64 `yaml:"chance"`
	Rarity string  `yaml:"rarity"`
}
