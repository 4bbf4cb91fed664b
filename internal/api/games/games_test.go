package games

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	dto "wager_engine/internal/api/dto/wager"
	"wager_engine/internal/config/env"
	engine "wager_engine/internal/games"
	"wager_engine/internal/model"
)

func TestListServesCatalog(t *testing.T) {
	catalog, err := engine.NewCatalog(env.DefaultGamesConfig())
	if err != nil {
		t.Fatal(err)
	}
	kinds := make([]model.GameKind, 0, len(catalog))
	for kind := range catalog {
		kinds = append(kinds, kind)
	}
	h := NewHandler(HandlerDeps{
		Games:  kinds,
		Cases:  catalog[model.GameCases].(*engine.CasesGame),
		Plinko: catalog[model.GamePlinko].(*engine.PlinkoGame),
	})

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/games", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var res dto.GamesResponse
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if len(res.Games) != 5 || res.Games[0] != "blackjack" {
		t.Errorf("games = %v", res.Games)
	}

	cases := env.DefaultGamesConfig().Cases()
	if len(res.Cases) != len(cases) {
		t.Fatalf("%d cases, want %d", len(res.Cases), len(cases))
	}
	for i, c := range cases {
		if res.Cases[i].ID != c.ID || res.Cases[i].Price != c.Price || len(res.Cases[i].Items) != len(c.Items) {
			t.Errorf("case %d = %+v", i, res.Cases[i])
		}
	}

	if len(res.Plinko) != 3 {
		t.Fatalf("plinko tiers = %+v", res.Plinko)
	}
	for _, tier := range res.Plinko {
		if len(tier.Multipliers) != tier.Rows+2 {
			t.Errorf("%s: %d multipliers for %d rows", tier.Name, len(tier.Multipliers), tier.Rows)
		}
	}
}
