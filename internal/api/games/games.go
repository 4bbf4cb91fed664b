package games

import (
	"net/http"
	"wager_engine/internal/config"
	"wager_engine/internal/converter"
	engine "wager_engine/internal/games"
	"wager_engine/internal/model"
	"wager_engine/pkg/resp"
)

// CaseCatalog - the configured cases in display order
type CaseCatalog interface {
	Catalog() []config.CaseSettings
}

// PlinkoTable - the configured plinko tiers
type PlinkoTable interface {
	TierInfo() []engine.PlinkoTierInfo
}

type HandlerDeps struct {
	Games  []model.GameKind
	Cases  CaseCatalog
	Plinko PlinkoTable
}

type Handler struct {
	games  []model.GameKind
	cases  CaseCatalog
	plinko PlinkoTable
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		games:  deps.Games,
		cases:  deps.Cases,
		plinko: deps.Plinko,
	}
}

// List - GET /games, playable games with the case catalog and plinko tiers
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToGamesResponse(h.games, h.cases.Catalog(), h.plinko.TierInfo()))
}
