package env

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseGamesConfigOverrides(t *testing.T) {
	cfg, err := ParseGamesConfig([]byte(`
mines:
  rows: 5
  cols: 5
  house_edge: 0.95
  default_mines: 5
dice:
  payout_pool: 98
`))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Mines().HouseEdge != 0.95 || cfg.Mines().DefaultMines != 5 {
		t.Errorf("mines = %+v", cfg.Mines())
	}
	if cfg.Dice().PayoutPool != 98 {
		t.Errorf("dice = %+v", cfg.Dice())
	}

	defaults := DefaultGamesConfig()
	if cfg.Blackjack() != defaults.Blackjack() {
		t.Errorf("blackjack lost its defaults: %+v", cfg.Blackjack())
	}
	if len(cfg.Plinko().Tiers) != 3 || len(cfg.Cases()) != 3 {
		t.Errorf("plinko tiers %d, cases %d", len(cfg.Plinko().Tiers), len(cfg.Cases()))
	}
}

func TestParseGamesConfigRejectsGarbage(t *testing.T) {
	if _, err := ParseGamesConfig([]byte("mines: [1, 2")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	path := filepath.Join("..", "..", "..", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Skipf("no config.yaml next to go.mod: %v", err)
	}

	cfg, err := NewGamesConfigFromYAML(path)
	if err != nil {
		t.Fatal(err)
	}
	defaults := DefaultGamesConfig()

	if !reflect.DeepEqual(cfg.Mines(), defaults.Mines()) {
		t.Errorf("mines: %+v != %+v", cfg.Mines(), defaults.Mines())
	}
	if !reflect.DeepEqual(cfg.Plinko(), defaults.Plinko()) {
		t.Errorf("plinko differs from the built-in tables")
	}
	if !reflect.DeepEqual(cfg.Cases(), defaults.Cases()) {
		t.Errorf("cases differ from the built-in catalog")
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := NewGamesConfigFromYAML(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
