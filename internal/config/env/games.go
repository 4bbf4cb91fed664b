package env

import (
	"fmt"
	"os"
	"wager_engine/internal/config"

	"gopkg.in/yaml.v3"
)

type gamesConfig struct {
	MinesCfg     config.MinesSettings     `yaml:"mines"`
	DiceCfg      config.DiceSettings      `yaml:"dice"`
	BlackjackCfg config.BlackjackSettings `yaml:"blackjack"`
	PlinkoCfg    config.PlinkoSettings    `yaml:"plinko"`
	CasesCfg     []config.CaseSettings    `yaml:"cases"`
}

// NewGamesConfigFromYAML - reads game tuning from a yaml file.
// Sections that are missing fall back to the defaults below, so a file may
// override only what it needs.
func NewGamesConfigFromYAML(path string) (config.GamesConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read games config: %w", err)
	}

	return ParseGamesConfig(b)
}

func ParseGamesConfig(b []byte) (config.GamesConfig, error) {
	cfg := defaultGamesConfig()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse games config: %w", err)
	}

	return cfg, nil
}

func (g *gamesConfig) Mines() config.MinesSettings {
	return g.MinesCfg
}

func (g *gamesConfig) Dice() config.DiceSettings {
	return g.DiceCfg
}

func (g *gamesConfig) Blackjack() config.BlackjackSettings {
	return g.BlackjackCfg
}

func (g *gamesConfig) Plinko() config.PlinkoSettings {
	return g.PlinkoCfg
}

func (g *gamesConfig) Cases() []config.CaseSettings {
	return g.CasesCfg
}

// DefaultGamesConfig - the tables the games shipped with
func DefaultGamesConfig() config.GamesConfig {
	return defaultGamesConfig()
}

func defaultGamesConfig() *gamesConfig {
	return &gamesConfig{
		MinesCfg: config.MinesSettings{
			Rows:         5,
			Cols:         5,
			HouseEdge:    0.97,
			DefaultMines: 3,
		},
		DiceCfg: config.DiceSettings{
			PayoutPool: 99,
		},
		BlackjackCfg: config.BlackjackSettings{
			ReshuffleAt: 20,
		},
		PlinkoCfg: config.PlinkoSettings{
			DefaultTier: "medium",
			Physics: config.PlinkoPhysics{
				Width:       800,
				Margin:      50,
				PegRadius:   6,
				BallRadius:  8,
				PegPitch:    40,
				PegTop:      120,
				RowSpacing:  35,
				DropY:       50,
				DropSpread:  30,
				Gravity:     0.15,
				Speed:       0.8,
				Drag:        0.88,
				BounceSpeed: 2,
				BounceLift:  1.5,
				Jitter:      2.5,
				Restitution: 0.7,
				Clearance:   2,
				MaxTicks:    20000,
			},
			Tiers: map[string]config.PlinkoTier{
				"easy": {
					Rows:        7,
					Multipliers: []float64{5, 2, 1.5, 1, 0.5, 1, 1.5, 2, 5},
					Jitter:      2.5,
				},
				"medium": {
					Rows:        11,
					Multipliers: []float64{25, 10, 5, 2, 1, 0.5, 0.2, 0.5, 1, 2, 5, 10, 25},
					Jitter:      4,
				},
				"hard": {
					Rows:        15,
					Multipliers: []float64{100, 50, 25, 10, 5, 2, 1, 0.5, 0.2, 0.5, 1, 2, 5, 10, 25, 50, 100},
					Jitter:      1.8,
				},
			},
		},
		CasesCfg: []config.CaseSettings{
			{
				ID:    "basic",
				Name:  "Basic Case",
				Price: 10,
				Items: []config.CaseItemSpec{
					{Name: "Junk", Value: 1, Chance: 60, Rarity: "common"},
					{Name: "Small Coin", Value: 5, Chance: 25, Rarity: "common"},
					{Name: "Medium Coin", Value: 15, Chance: 10, Rarity: "uncommon"},
					{Name: "Gold Coin", Value: 25, Chance: 4, Rarity: "rare"},
					{Name: "Diamond", Value: 50, Chance: 1, Rarity: "legendary"},
				},
			},
			{
				ID:    "premium",
				Name:  "Premium Case",
				Price: 50,
				Items: []config.CaseItemSpec{
					{Name: "Junk", Value: 5, Chance: 45, Rarity: "common"},
					{Name: "Silver Coin", Value: 25, Chance: 30, Rarity: "common"},
					{Name: "Gold Coin", Value: 75, Chance: 15, Rarity: "uncommon"},
					{Name: "Ruby", Value: 150, Chance: 7, Rarity: "rare"},
					{Name: "Diamond", Value: 300, Chance: 2.5, Rarity: "rare"},
					{Name: "Legendary Gem", Value: 500, Chance: 0.5, Rarity: "legendary"},
				},
			},
			{
				ID:    "elite",
				Name:  "Elite Case",
				Price: 100,
				Items: []config.CaseItemSpec{
					{Name: "Bronze", Value: 20, Chance: 40, Rarity: "common"},
					{Name: "Silver", Value: 75, Chance: 25, Rarity: "common"},
					{Name: "Gold", Value: 150, Chance: 20, Rarity: "uncommon"},
					{Name: "Platinum", Value: 300, Chance: 10, Rarity: "rare"},
					{Name: "Diamond Crown", Value: 600, Chance: 4, Rarity: "rare"},
					{Name: "Legendary Crown", Value: 1000, Chance: 1, Rarity: "legendary"},
				},
			},
		},
	}
}
